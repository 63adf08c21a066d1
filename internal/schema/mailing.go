package schema

// Mailing returns the mailing-address schema.
func Mailing() *Schema {
	return &Schema{
		Name:         "mailing",
		OutputSuffix: "Mailing",
		Sentinel:     MissingSentinel,
		Fields: []FieldDef{
			{Name: "Mailing_Address_Level", Description: "FULL_ADDRESS, PARTIAL, or NONE depending on address completeness", Format: "String", MaxLength: 12, Required: true},
			{Name: "Care_Of", Description: "Full C/O or ATTN line", Format: "String", MaxLength: 100},
			{Name: "House_Number_Alpha", Description: "Full street number, or exactly 'P.O. BOX' for box addresses", Format: "Alphanumeric", MaxLength: 10},
			{Name: "House_Alpha", Description: "Letter part of the street number", Format: "String", MaxLength: 2},
			{Name: "Pre_Direction", Description: "Direction prefix to the street name", Format: "N, S, E, W, NE, NW, SE, SW", MaxLength: 2},
			{Name: "Street_Name", Description: "Street name only, or box number for P.O. Box addresses", Format: "String", MaxLength: 50},
			{Name: "Street_Suffix", Description: "Standard street type abbreviation", Format: "ST, AVE, BLVD, CIR, RD, ...", MaxLength: 5},
			{Name: "Post_Direction", Description: "Direction suffix to the street name", Format: "N, S, E, W, NE, NW, SE, SW", MaxLength: 2},
			{Name: "Unit_Designator", Description: "Unit type designator", Format: "APT, STE, UNIT, FL, #", MaxLength: 10},
			{Name: "Unit_Number", Description: "Unit number or letter", Format: "Alphanumeric", MaxLength: 10},
			{Name: "City", Description: "Full city name", Format: "String", MaxLength: 30, Required: true},
			{Name: "State", Description: "Two-letter state code", Format: "String", MaxLength: 2, Required: true},
			{Name: "Zip", Description: "Five-digit ZIP code", Format: "Numeric", MaxLength: 5, Required: true},
			{Name: "Zip_4", Description: "Four-digit ZIP extension", Format: "Numeric", MaxLength: 4},
			{Name: "Carrier_Route", Description: "Postal carrier route", Format: "String", MaxLength: 10},
			{Name: "Latitude", Description: "Latitude coordinates", Format: "Decimal"},
			{Name: "Longitude", Description: "Longitude coordinates", Format: "Decimal"},
			{Name: "Census_Tract_block", Description: "Census tract block identifier", Format: "String"},
		},
		Trailer: []TrailerColumn{
			{Name: "ReferenceId", Value: ""},
			{Name: "SourceId", Value: ""},
		},
	}
}
