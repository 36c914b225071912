// Package termid assigns stable, collision-free identifiers to vocabulary terms.
//
// An identifier is built from three parts:
//
//	{namespace}{type_prefix}-{unique_part}
//
// The type prefix (and its dash) is optional. The unique part is either 8
// lowercase hex characters taken from a random UUID (MethodUUID) or the first
// 10 lowercase hex characters of an MD5 digest of the term label (MethodHash).
// Hash identifiers are deterministic: the same label always yields the same
// identifier on a fresh registry, and collisions are resolved by salting the
// label with the attempt number.
//
// # Components
//
//   - Format validates candidate identifiers for a namespace and type prefix.
//   - Generator mints identifiers and claims them in a Registry.
//   - Order sorts records so that a parent still waiting for an identifier is
//     processed before its children.
//   - CheckUnique verifies that a field is present and unique across records.
//   - Processor drives all of the above over a record set and remaps parent
//     references from old to new identifiers.
//
// # Usage
//
//	proc, err := termid.NewProcessor(termid.Options{
//	    Namespace:   "ex:",
//	    LabelField:  "name",
//	    ParentField: "parent",
//	    Method:      termid.MethodHash,
//	})
//	if err != nil {
//	    return err
//	}
//	result, err := proc.Process(records)
//
// Every failure is a *Error carrying a Kind, and any error aborts the whole
// batch. Callers must not persist records after Process returns an error.
package termid
