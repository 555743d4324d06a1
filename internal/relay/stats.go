package relay

// returns live counts and visitors
func (r *Router) Stats() Stats {
	snapshot := r.registry.Snapshot()
	visitors := make([]VisitorInfo, 0, len(snapshot))
	for _, s := range snapshot {
		visitors = append(visitors, s.Info())
	}

	return Stats{
		VisitorsOnline: len(visitors),
		AdminsOnline:   r.admins.Count(),
		Visitors:       visitors,
	}
}
