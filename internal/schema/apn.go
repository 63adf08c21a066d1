package schema

// APN returns the assessor's parcel number schema.
func APN() *Schema {
	return &Schema{
		Name:         "apn",
		OutputSuffix: "APN",
		Sentinel:     MissingSentinel,
		Fields: []FieldDef{
			{Name: "APN_Level", Description: "The hierarchical level in the APN structure, almost always 'A'", Format: "Single character 'A'", MaxLength: 1, Required: true},
			{Name: "APN_AIN", Description: "Assessor's Identification Number (APN/Parcel ID) in various formats", Format: "XXX-XXX-XXX-XXX, XXXXXXXXXX, or XXXX-XXXXXXX-XX", MaxLength: 50, Required: true},
		},
	}
}
