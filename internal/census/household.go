package census

// Households groups a collection's records by household key. Purely
// derived; rebuilt each run.
type Households map[string][]*Record

// GroupHouseholds indexes records by family/dwelling key. Records with no
// household key are left out.
func GroupHouseholds(c *Collection) Households {
	households := make(Households)
	for _, r := range c.Records {
		key := r.HouseholdKey()
		if key == "" {
			continue
		}
		households[key] = append(households[key], r)
	}
	return households
}

// Members returns the household for a key, or nil when unknown.
func (h Households) Members(key string) []*Record {
	return h[key]
}
