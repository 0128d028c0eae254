package doctor

// Doctor maps to the doctor table. Doctors are seeded reference data and are
// never mutated by the prescription workflows.
type Doctor struct {
	ID        int64  `db:"id_doctor" json:"id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email"`
}
