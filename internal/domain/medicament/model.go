package medicament

// Medicament maps to the medicament table (drug catalog). Rows are seeded
// reference data and are never mutated by the prescription workflows.
type Medicament struct {
	ID          int64  `db:"id_medicament" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	Type        string `db:"type" json:"type"`
}
