package domain

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
)

var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrDuplicateRecord = errors.New("duplicate record")
)

// Fields holds the resource specific part of a record as decoded JSON.
// Numbers are kept as json.Number so integer ids survive round trips.
type Fields map[string]any

// Record is one stored entity of any resource type.
type Record struct {
	IDField   string    `json:"-"`
	ID        int64     `json:"-"`
	Fields    Fields    `json:"-"`
	Status    bool      `json:"-"`
	CreatedBy *int64    `json:"-"`
	UpdatedBy *int64    `json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// MarshalJSON flattens the domain fields next to the bookkeeping fields,
// using the resource's own id field name.
func (r *Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+6)
	for k, v := range r.Fields {
		out[k] = v
	}
	idField := r.IDField
	if idField == "" {
		idField = "id"
	}
	out[idField] = r.ID
	out["status"] = r.Status
	out["createdBy"] = r.CreatedBy
	out["updatedBy"] = r.UpdatedBy
	out["createdAt"] = r.CreatedAt
	out["updatedAt"] = r.UpdatedAt
	return json.Marshal(out)
}

// Clone returns a deep enough copy for the in-memory store; nested values
// are copied through a JSON round trip.
func (r *Record) Clone() *Record {
	c := *r
	c.Fields = r.Fields.Clone()
	if r.CreatedBy != nil {
		v := *r.CreatedBy
		c.CreatedBy = &v
	}
	if r.UpdatedBy != nil {
		v := *r.UpdatedBy
		c.UpdatedBy = &v
	}
	return &c
}

// Clone copies the field map including nested lists and objects.
func (f Fields) Clone() Fields {
	if f == nil {
		return Fields{}
	}
	raw, err := json.Marshal(f)
	if err != nil {
		out := make(Fields, len(f))
		for k, v := range f {
			out[k] = v
		}
		return out
	}
	out, err := DecodeFields(raw)
	if err != nil {
		return Fields{}
	}
	return out
}

// DecodeFields decodes a JSON object keeping numbers as json.Number.
func DecodeFields(raw []byte) (Fields, error) {
	dec := json.NewDecoder(bytesReader(raw))
	dec.UseNumber()
	out := Fields{}
	if err := dec.Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decode fields")
	}
	return out, nil
}

// FieldsFrom converts a typed payload into Fields. Pointer fields tagged
// omitempty disappear when nil, which is what partial updates rely on.
func FieldsFrom(payload any) (Fields, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "encode payload")
	}
	return DecodeFields(raw)
}

// Int64 reads an integer field regardless of how it was decoded.
func (f Fields) Int64(key string) (int64, bool) {
	return toInt64(f[key])
}
