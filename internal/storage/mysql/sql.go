package mysql

// -----------------------------------------------------------------------------
// WRITE QUERIES (seeding replaces the whole catalog inside one transaction)
// -----------------------------------------------------------------------------

// children first (catalog_cities references catalog_countries)
const deleteCitiesSQL = `DELETE FROM catalog_cities`
const deleteCountriesSQL = `DELETE FROM catalog_countries`
const deletePlacesSQL = `DELETE FROM catalog_places`

const insertPlacesPrefix = "INSERT INTO catalog_places\n  (kind, position, name, image_url, description)\nVALUES "

const insertCountrySQL = `
INSERT INTO catalog_countries (position, name)
VALUES (?, ?)
`

const insertCitiesPrefix = "INSERT INTO catalog_cities\n  (country_position, position, name, image_url, description)\nVALUES "

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Catalog order is the position column; the loader relies on it.
const listPlacesSQL = `
SELECT name, image_url, description
FROM catalog_places
WHERE kind = ?
ORDER BY position
`

const listCountriesSQL = `
SELECT position, name
FROM catalog_countries
ORDER BY position
`

const listCitiesSQL = `
SELECT country_position, name, image_url, description
FROM catalog_cities
ORDER BY country_position, position
`
