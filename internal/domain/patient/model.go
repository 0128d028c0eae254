package patient

import "time"

// Patient maps to the patient table. A patient is created by the store on
// first prescription (id assigned on insert) and its demographic fields are
// never updated afterwards.
type Patient struct {
	ID        int64     `db:"id_patient" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Birthdate time.Time `db:"birthdate" json:"birthdate"`
}
