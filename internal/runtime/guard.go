package runtime

// guard is the cycle guard of one search branch: the configurations entered
// through non-consuming moves since the last consumed symbol. The zero value is
// the empty guard; a consuming move starts over from it.
type guard struct {
	seen *chain[string]
}

func (g guard) has(key string) bool {
	for n := g.seen; n != nil; n = n.tail {
		if n.head == key {
			return true
		}
	}
	return false
}

func (g guard) with(key string) guard {
	return guard{seen: g.seen.push(key)}
}

func (g guard) len() int {
	return g.seen.len()
}
