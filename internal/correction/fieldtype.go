package correction

import "strings"

// FieldType is the coarse semantic category of a logistics field, used to
// select the guidance block embedded in correction prompts.
type FieldType string

const (
	FieldVessel       FieldType = "vessel"
	FieldCargoControl FieldType = "cargo_control"
	FieldPONumber     FieldType = "po_number"
	FieldQuantity     FieldType = "quantity"
	FieldCurrency     FieldType = "currency"
	FieldCountry      FieldType = "country"
	FieldAddress      FieldType = "address"
	FieldPackageCode  FieldType = "package_code"
	FieldWeight       FieldType = "weight"
	FieldCompanyName  FieldType = "company_name"
	FieldOther        FieldType = "other"
)

// fieldKeywords is the classification priority list. Order matters where
// fragments overlap: "consignee_address" must hit the address entry before
// company_name's "consignee" gets a chance.
var fieldKeywords = []struct {
	fieldType FieldType
	fragments []string
}{
	{FieldVessel, []string{"vessel_name", "ship_name"}},
	{FieldCargoControl, []string{"cargo_control_number", "ccn"}},
	{FieldPONumber, []string{"po_number", "purchase_order"}},
	{FieldQuantity, []string{"quantity", "qty"}},
	{FieldCurrency, []string{"currency", "curr"}},
	{FieldCountry, []string{"country", "country_code"}},
	{FieldAddress, []string{"address", "shipper_address", "consignee_address"}},
	{FieldPackageCode, []string{"package_code", "pkg_code"}},
	{FieldWeight, []string{"weight", "cargo_weight"}},
	{FieldCompanyName, []string{"company_name", "shipper", "consignee", "vendor"}},
}

// ClassifyField maps a raw field name onto a FieldType by case-insensitive
// substring match against the priority list. Names matching nothing come
// back as FieldOther; there is no failure mode.
func ClassifyField(fieldName string) FieldType {
	lower := strings.ToLower(fieldName)
	for _, entry := range fieldKeywords {
		for _, fragment := range entry.fragments {
			if strings.Contains(lower, fragment) {
				return entry.fieldType
			}
		}
	}
	return FieldOther
}
