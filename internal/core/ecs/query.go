package ecs

// Each iterates the interest list of s in insertion order. The list is
// stable for the whole call because structural changes wait for Update.
func Each(s *SystemBase, fn func(Entity)) {
	for _, e := range s.entities {
		fn(e)
	}
}

// Each2 iterates the interest list of s, passing components A and B.
// Entities that lost either component since the last Update are skipped.
// fn may create entities and add components; pool growth does not move the
// slots A and B point to.
func Each2[A, B any](s *SystemBase, fn func(Entity, *A, *B)) {
	m := s.World().entities
	for _, e := range s.entities {
		if !hasComponent[A](m, e) || !hasComponent[B](m, e) {
			continue
		}
		fn(e, getComponent[A](m, e), getComponent[B](m, e))
	}
}

// Each3 iterates the interest list of s, passing components A, B and C.
func Each3[A, B, C any](s *SystemBase, fn func(Entity, *A, *B, *C)) {
	m := s.World().entities
	for _, e := range s.entities {
		if !hasComponent[A](m, e) || !hasComponent[B](m, e) || !hasComponent[C](m, e) {
			continue
		}
		fn(e, getComponent[A](m, e), getComponent[B](m, e), getComponent[C](m, e))
	}
}
