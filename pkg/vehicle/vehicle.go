package vehicle

import (
	"errors"
	"fmt"
)

// NoTintRecord is what the registry shows when a vehicle has no tint permit.
const NoTintRecord = "No existe registro de polarizado"

// ErrNotFound is returned by a lookup when the registry answered but holds no
// record for the plate.
var ErrNotFound = errors.New("vehicle not found")

// Record is a confirmed registry entry. Empty fields were not reported by the registry.
type Record struct {
	Plate            string
	Make             string
	Model            string
	Year             string
	Color            string
	Class            string
	RegistrationDate string
	RegistrationYear string
	Service          string
	ExpiryDate       string
	Tint             string
}

// Columns is the fixed field order of a persisted record.
var Columns = []string{
	"placa", "marca", "modelo", "anio", "color",
	"clase", "fecha_matricula", "anio_matricula", "servicio",
	"fecha_caducidad", "polarizado",
}

// Row returns the record's values in Columns order.
func (r Record) Row() []string {
	return []string{
		r.Plate, r.Make, r.Model, r.Year, r.Color,
		r.Class, r.RegistrationDate, r.RegistrationYear, r.Service,
		r.ExpiryDate, r.Tint,
	}
}

// FromRow builds a record from values in Columns order.
func FromRow(row []string) (Record, error) {
	if len(row) != len(Columns) {
		return Record{}, fmt.Errorf("expected %d fields, got %d", len(Columns), len(row))
	}
	return Record{
		Plate:            row[0],
		Make:             row[1],
		Model:            row[2],
		Year:             row[3],
		Color:            row[4],
		Class:            row[5],
		RegistrationDate: row[6],
		RegistrationYear: row[7],
		Service:          row[8],
		ExpiryDate:       row[9],
		Tint:             row[10],
	}, nil
}

// LookupError wraps a transport or service failure while querying the registry.
type LookupError struct {
	Plate string
	Err   error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %s: %v", e.Plate, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }
