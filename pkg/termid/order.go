package termid

import "fmt"

// Order returns records sorted so that every record whose parent reference is
// still pending (not a valid identifier for format and method) comes after
// the record that owns that parent id. References that are already valid
// identifiers impose no ordering.
//
// Records without pending parents keep their input order, and children are
// released in the order their edges were discovered. If parentField is empty
// the input order is returned unchanged.
//
// A dependency cycle, or a pending parent that names no record, leaves records
// unplaced; this is reported as an ordering error rather than a shorter list.
func Order(records []Record, idField, parentField string, format Format, method Method) ([]Record, error) {
	ordered := make([]Record, 0, len(records))
	if parentField == "" {
		return append(ordered, records...), nil
	}

	owners := make(map[string][]int, len(records))
	for i, r := range records {
		if id, ok := r.Lookup(idField); ok {
			owners[id] = append(owners[id], i)
		}
	}

	children := make([][]int, len(records))
	inDegree := make([]int, len(records))
	for i, r := range records {
		parent, ok := r.Lookup(parentField)
		if !ok {
			continue
		}
		valid, err := format.IsValid(parent, method)
		if err != nil {
			return nil, err
		}
		if valid {
			continue
		}

		// A pending parent with no owner keeps its in-degree forever and
		// surfaces as an unplaced record below.
		inDegree[i]++
		switch owner := owners[parent]; len(owner) {
		case 0:
		case 1:
			children[owner[0]] = append(children[owner[0]], i)
		default:
			e := newError(KindOrdering, "order",
				"parent reference %q matches %d records", parent, len(owner))
			e.Values = []string{parent}
			return nil, e
		}
	}

	queue := make([]int, 0, len(records))
	for i := range records {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		ordered = append(ordered, records[current])

		for _, child := range children[current] {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	if len(ordered) != len(records) {
		var unplaced []string
		for i, r := range records {
			if inDegree[i] == 0 {
				continue
			}
			parent, _ := r.Lookup(parentField)
			unplaced = append(unplaced, fmt.Sprintf("#%d %s=%s", i, parentField, parent))
		}
		e := newError(KindOrdering, "order",
			"dependency cycle or unresolved parent, ordered %d of %d records",
			len(ordered), len(records))
		e.Values = unplaced
		return nil, e
	}

	return ordered, nil
}
