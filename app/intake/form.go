package intake

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/contactform/core/validator"
)

// StoreHeader is the fixed column order of the store and the CSV attachment.
var StoreHeader = []string{"Faculty Name", "University Name", "Contact Name", "Designation", "Email"}

// ContactRow is one university contact block.
type ContactRow struct {
	University  string `json:"university_name"`
	ContactName string `json:"contact_name"`
	Designation string `json:"designation"`
	Email       string `json:"email"`
}

func (r ContactRow) check() validator.ValidationErrors {
	return validator.ExtractValidationErrors(validator.Apply(
		validator.Required("university_name", r.University),
		validator.Required("contact_name", r.ContactName),
		validator.Required("designation", r.Designation),
		validator.Required("email", r.Email),
	))
}

// Complete reports whether all four fields are filled in.
func (r ContactRow) Complete() bool {
	return r.check().IsEmpty()
}

// Valid reports whether the row is complete and the email is well formed.
func (r ContactRow) Valid() bool {
	return r.Complete() && validator.IsEmail(r.Email)
}

// Columns returns the row values in store column order, minus the faculty.
func (r ContactRow) Columns() []string {
	return []string{
		strings.TrimSpace(r.University),
		strings.TrimSpace(r.ContactName),
		strings.TrimSpace(r.Designation),
		strings.TrimSpace(r.Email),
	}
}

// Record is one flattened store line.
type Record struct {
	Faculty string
	ContactRow
}

// Values returns the record in StoreHeader order.
func (r Record) Values() []string {
	return append([]string{strings.TrimSpace(r.Faculty)}, r.Columns()...)
}

// Draft is the per-user form state kept in the session between interactions.
type Draft struct {
	Faculty string       `json:"faculty_name"`
	Rows    []ContactRow `json:"rows"`
}

// NewDraft returns a draft showing one empty contact block.
func NewDraft() Draft {
	return Draft{Rows: []ContactRow{{}}}
}

// AddRow appends an empty contact block.
func (d *Draft) AddRow() {
	d.Rows = append(d.Rows, ContactRow{})
}

// Normalize guarantees at least one visible row.
func (d *Draft) Normalize() {
	if len(d.Rows) == 0 {
		d.Rows = []ContactRow{{}}
	}
}

// Validation is the result of checking a draft. It never mutates the draft.
type Validation struct {
	ValidRows []ContactRow
	CanSubmit bool
	// Warnings name every complete row whose email fails the syntax check.
	Warnings []string
}

// Validate derives the valid rows and whether the draft may be submitted.
func (d Draft) Validate() Validation {
	var v Validation
	for _, row := range d.Rows {
		if !row.Complete() {
			continue
		}
		if !validator.IsEmail(row.Email) {
			v.Warnings = append(v.Warnings, fmt.Sprintf("Invalid email format: %s", strings.TrimSpace(row.Email)))
			continue
		}
		v.ValidRows = append(v.ValidRows, row)
	}
	v.CanSubmit = strings.TrimSpace(d.Faculty) != "" && len(v.ValidRows) > 0
	return v
}

// Records pairs each valid row with the faculty name, in row order.
func (d Draft) Records() []Record {
	valid := d.Validate().ValidRows
	faculty := strings.TrimSpace(d.Faculty)
	records := make([]Record, 0, len(valid))
	for _, row := range valid {
		records = append(records, Record{Faculty: faculty, ContactRow: row})
	}
	return records
}

// draftForm is the posted shape of the page: one field per input, repeated
// once per contact block.
type draftForm struct {
	Faculty      string   `form:"faculty_name" sanitize:"text,max:200"`
	Universities []string `form:"university_name" sanitize:"text,max:200"`
	Contacts     []string `form:"contact_name" sanitize:"text,max:200"`
	Designations []string `form:"designation" sanitize:"text,max:200"`
	Emails       []string `form:"email" sanitize:"text,max:254"`
}

// draft rebuilds the rows. Blocks with missing inputs get empty fields.
func (f draftForm) draft() Draft {
	n := max(len(f.Universities), len(f.Contacts), len(f.Designations), len(f.Emails))
	d := Draft{Faculty: f.Faculty, Rows: make([]ContactRow, n)}
	for i := range n {
		d.Rows[i] = ContactRow{
			University:  at(f.Universities, i),
			ContactName: at(f.Contacts, i),
			Designation: at(f.Designations, i),
			Email:       at(f.Emails, i),
		}
	}
	d.Normalize()
	return d
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}
