package ui

// reconcileKeyed joins the retained node set against the next desired
// data set by key. Keys only in next are created, keys in both are
// updated in place (node identity preserved, so any animation state
// carries over), keys only in nodes are removed. Partitions apply in
// that order. The nodes map is mutated to match next's key set.
func reconcileKeyed[N any, D any](
	nodes map[string]N,
	next map[string]D,
	create func(key string, d D) N,
	update func(n N, d D),
	remove func(n N),
) {
	created := make(map[string]N)
	for key, d := range next {
		if _, ok := nodes[key]; !ok {
			created[key] = create(key, d)
		}
	}
	for key, d := range next {
		if n, ok := nodes[key]; ok {
			update(n, d)
		}
	}
	for key, n := range nodes {
		if _, ok := next[key]; !ok {
			remove(n)
			delete(nodes, key)
		}
	}
	for key, n := range created {
		nodes[key] = n
	}
}
