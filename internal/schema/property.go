package schema

// Property returns the property (situs) address schema.
func Property() *Schema {
	return &Schema{
		Name:         "property",
		OutputSuffix: "Property",
		Sentinel:     MissingSentinel,
		Fields: []FieldDef{
			{Name: "Property_Address_Level", Description: "Level of the property address", Format: "Varchar", MaxLength: 1},
			{Name: "Block_ID", Description: "Block ID associated with the property", Format: "Varchar", MaxLength: 5},
			{Name: "House_Number", Description: "The primary number assigned to a building for identification", Format: "Numeric", MaxLength: 10},
			{Name: "House_Number_Alpha", Description: "Any alphabetical suffix assigned to the house number", Format: "String", MaxLength: 2},
			{Name: "Pre_Direction", Description: "Direction prefix to the street name", Format: "N, S, E, W", MaxLength: 1},
			{Name: "Street_Name", Description: "The name of the street where the property is located", Format: "String", MaxLength: 50},
			{Name: "Street_Suffix", Description: "Type of street", Format: "ST, AVE, BLVD, RD, ...", MaxLength: 5},
			{Name: "Post_Direction", Description: "Direction suffix to the street name", Format: "N, S, E, W", MaxLength: 1},
			{Name: "Unit_Designator", Description: "Designator for unit types", Format: "APT, UNIT, STE, ...", MaxLength: 10},
			{Name: "Unit_Number", Description: "The specific unit number within a multi-unit building", Format: "Alphanumeric", MaxLength: 10},
			{Name: "City", Description: "The city where the property is located", Format: "String", MaxLength: 30},
			{Name: "State", Description: "The state where the property is located", Format: "String", MaxLength: 2},
			{Name: "Zip", Description: "The standard postal code for the address", Format: "String", MaxLength: 10},
			{Name: "Zip_4", Description: "The extended postal code", Format: "String", MaxLength: 4},
			{Name: "Carrier_Route", Description: "Postal carrier route", Format: "String"},
			{Name: "Latitude", Description: "Latitude coordinates", Format: "Decimal"},
			{Name: "Longitude", Description: "Longitude coordinates", Format: "Decimal"},
			{Name: "Census_Tract_block", Description: "Census tract block identifier", Format: "String"},
			{Name: "House_Number_", Description: "Alternative house number field", Format: "String", MaxLength: 10},
		},
		Trailer: []TrailerColumn{
			{Name: "IsFromModel", Value: "N"},
			{Name: "XrefRemarks", Value: "NONE"},
		},
	}
}
