package model

// Contact is contact model entity
type Contact struct {
	ID        string `json:"id" bson:"_id" msgpack:"id"`
	FirstName string `json:"firstName" bson:"firstName" msgpack:"firstName"`
	LastName  string `json:"lastName" bson:"lastName" msgpack:"lastName"`
	Email     string `json:"email" bson:"email" msgpack:"email"`
	Phone     string `json:"phone" bson:"phone" msgpack:"phone"`
	Company   string `json:"company" bson:"company" msgpack:"company"`
	JobTitle  string `json:"jobTitle" bson:"jobTitle" msgpack:"jobTitle"`
}

// ContactPatch holds editable contact fields, nil means the stored value is kept
type ContactPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Company   *string
	JobTitle  *string
}

// IsEmpty reports whether patch changes nothing
func (p ContactPatch) IsEmpty() bool {
	return p == ContactPatch{}
}

// Apply returns copy of c with patch fields merged in
func (p ContactPatch) Apply(c Contact) Contact {
	if p.FirstName != nil {
		c.FirstName = *p.FirstName
	}

	if p.LastName != nil {
		c.LastName = *p.LastName
	}

	if p.Email != nil {
		c.Email = *p.Email
	}

	if p.Phone != nil {
		c.Phone = *p.Phone
	}

	if p.Company != nil {
		c.Company = *p.Company
	}

	if p.JobTitle != nil {
		c.JobTitle = *p.JobTitle
	}
	return c
}
