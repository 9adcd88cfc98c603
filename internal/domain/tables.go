package domain

var Tables = []interface{}{
	// Catalog
	&SetMenu{},
	&Cuisine{},
	&CuisineSetMenu{},
}
