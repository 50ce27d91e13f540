package domain

// Catalog is the static travel dataset. It is read-only once loaded.
type Catalog struct {
	Beaches   []Place   `json:"beaches"`
	Temples   []Place   `json:"temples"`
	Countries []Country `json:"countries"`
}

// Place is a beach, temple or city. Names are not unique.
type Place struct {
	Name        string `json:"name"`
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
}

type Country struct {
	Name   string  `json:"name"`
	Cities []Place `json:"cities"`
}

// EmptyCatalog is what callers get when the catalog could not be loaded.
func EmptyCatalog() Catalog {
	return Catalog{Beaches: []Place{}, Temples: []Place{}, Countries: []Country{}}
}

// Counts returns the number of beaches, temples, countries and cities.
func (c Catalog) Counts() (beaches, temples, countries, cities int) {
	for _, co := range c.Countries {
		cities += len(co.Cities)
	}
	return len(c.Beaches), len(c.Temples), len(c.Countries), cities
}
