package order

// GSTRequest is the customer's optional request for a GST invoice.
type GSTRequest struct {
	Requested     bool   `json:"requested"`
	GSTIN         string `json:"gstin,omitempty"`
	LegalName     string `json:"legal_name,omitempty"`
	PlaceOfSupply string `json:"place_of_supply,omitempty"`
	// TaxRate is a whole percentage; nil means the default rate.
	TaxRate *int `json:"tax_rate,omitempty"`
}

// GSTDisclosure is the GST block shown on the invoice. When Requested is
// false every other field is empty.
type GSTDisclosure struct {
	Requested     bool   `json:"requested"`
	GSTIN         string `json:"gstin,omitempty"`
	LegalName     string `json:"legal_name,omitempty"`
	PlaceOfSupply string `json:"place_of_supply,omitempty"`
	TaxRate       int    `json:"tax_rate,omitempty"`
	TaxableValue  int64  `json:"taxable_value,omitempty"`
	TaxAmount     int64  `json:"tax_amount,omitempty"`
}
