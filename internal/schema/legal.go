package schema

// Legal returns the legal-extract schema. The field order mirrors the
// downstream legal load file layout exactly.
func Legal() *Schema {
	return &Schema{
		Name:         "legal",
		OutputSuffix: "Legal",
		Sentinel:     MissingSentinel,
		Fields: []FieldDef{
			{Name: "Legal_Extract_Level", Description: "Level of legal extract", Format: "String", MaxLength: 1},
			{Name: "Legal_Type", Description: "Specifies the type of legal documentation associated with a property", Format: "MP, BMP, SE, RS, PM, SD, SB, DO, MCP, SF, TR", MaxLength: 20},
			{Name: "Map_Book", Description: "Reference book containing the detailed map information for navigation purpose", Format: "Integer or alphanumeric optionally including hyphens", MaxLength: 30},
			{Name: "Map_Page_From", Description: "Starting page number in map book", Format: "Integer", MaxLength: 5},
			{Name: "Map_Page_Thru", Description: "Ending page number in map book", Format: "Integer", MaxLength: 5},
			{Name: "Map_Date", Description: "Date of the map", Format: "Date", MaxLength: 10},
			{Name: "Map_Name", Description: "Name of the map or subdivision", Format: "String", MaxLength: 254},
			{Name: "Map_Number", Description: "Number assigned to the map", Format: "Alphanumeric", MaxLength: 15},
			{Name: "TractNumber", Description: "Tract identifier", Format: "Alphanumeric", MaxLength: 4},
			{Name: "PhaseValue", Description: "Phase of development", Format: "Alphanumeric", MaxLength: 4},
			{Name: "CaseNo", Description: "Case number", Format: "Alphanumeric", MaxLength: 20},
			{Name: "Meridian", Description: "Meridian identifier", Format: "Alphanumeric", MaxLength: 30},
			{Name: "SectionNumber", Description: "Section number", Format: "Alphanumeric", MaxLength: 4},
			{Name: "Township", Description: "Township identifier", Format: "Alphanumeric", MaxLength: 10},
			{Name: "Range", Description: "Range identifier", Format: "Alphanumeric", MaxLength: 5},
			{Name: "Government_TractNO", Description: "Government tract number", Format: "Alphanumeric", MaxLength: 20},
			{Name: "Government_LotNO", Description: "Government lot number", Format: "Alphanumeric", MaxLength: 4},
			{Name: "Areavalue", Description: "Area value", Format: "Numeric", MaxLength: 20},
			{Name: "Rack", Description: "Storage rack identifier", Format: "Alphanumeric", MaxLength: 10},
			{Name: "Arb_Tract", Description: "Arbitration tract identifier", Format: "Alphanumeric", MaxLength: 10},
			{Name: "Plat_Document_Number", Description: "Plat document number", Format: "Alphanumeric", MaxLength: 20},
			{Name: "Lot_Tract_Number", Description: "Lot or tract number", Format: "Alphanumeric", MaxLength: 15},
			{Name: "APN_Section", Description: "APN section identifier", Format: "String", MaxLength: 20},
			{Name: "Timeshare_reserve_for_future", Description: "Reserved field for future use", Format: "String", MaxLength: 50},
			{Name: "Quarters", Description: "Quarter section identifier", Format: "Alphanumeric", MaxLength: 10},
			{Name: "Block", Description: "Block identifier", Format: "Alphanumeric", MaxLength: 10},
			{Name: "Legal_Extract_Complete_Flag", Description: "Flag indicating complete legal extract", Format: "Y/N", MaxLength: 1},
			{Name: "Common_Area_Lot", Description: "Common area lot identifier", Format: "Alphanumeric", MaxLength: 10},
			{Name: "LotNumber", Description: "Lot number", Format: "Alphanumeric", MaxLength: 4},
			{Name: "Building", Description: "Building identifier", Format: "Alphanumeric", MaxLength: 20},
			{Name: "UnitNumber", Description: "Unit number", Format: "Alphanumeric", MaxLength: 4},
			{Name: "Share", Description: "Share identifier", Format: "Alphanumeric", MaxLength: 10},
			{Name: "Other", Description: "Other information", Format: "String", MaxLength: 100},
			{Name: "Parking_Space_Garage_Seperately_conveyed", Description: "Separately conveyed parking space", Format: "String", MaxLength: 50},
			{Name: "Parcel", Description: "Parcel identifier", Format: "Alphanumeric", MaxLength: 20},
			{Name: "Sub_Parcel", Description: "Sub-parcel identifier", Format: "Alphanumeric", MaxLength: 20},
			{Name: "Parking_Space_Garage_apartment", Description: "Parking space identifier", Format: "Alphanumeric", MaxLength: 20},
			{Name: "Fee_Easment", Description: "Fee easement information", Format: "String", MaxLength: 50},
			{Name: "Condo_Timeshare_Flag", Description: "Condo timeshare flag", Format: "C or blank", MaxLength: 1},
			{Name: "APN_AIN", Description: "APN/AIN identifier", Format: "Alphanumeric", MaxLength: 50},
			{Name: "Arb", Description: "Arbitration identifier", Format: "Alphanumeric", MaxLength: 20},
			{Name: "Portion", Description: "Portion identifier", Format: "Alphanumeric", MaxLength: 25},
			{Name: "Filler", Description: "Filler field", Format: "String", MaxLength: 50},
			{Name: "Condo_Time_Share_Plan_Book", Description: "Condo time share plan book", Format: "String", MaxLength: 20},
			{Name: "Condo_Time_Share_Plan_Date", Description: "Condo time share plan date", Format: "Date", MaxLength: 10},
			{Name: "Condo_Time_Share_Plan_Number", Description: "Condo time share plan number", Format: "Alphanumeric", MaxLength: 20},
			{Name: "Condo_Time_Share_Plan_Page_From", Description: "Starting page of condo time share plan", Format: "Integer", MaxLength: 5},
			{Name: "Condo_Time_Share_Plan_Page_Thru", Description: "Ending page of condo time share plan", Format: "Integer", MaxLength: 5},
			{Name: "Condo_Timeshare_Parcel_Description_#", Description: "Condo timeshare parcel description number", Format: "Alphanumeric", MaxLength: 20},
			{Name: "Other_Common_Lots", Description: "Other common lots", Format: "String", MaxLength: 100},
			{Name: "Other_Share_Numbers", Description: "Other share numbers", Format: "String", MaxLength: 100},
			{Name: "Plant_Name", Description: "Plant name", Format: "String", MaxLength: 100},
			{Name: "Timeshare_Half_Interest_#", Description: "Timeshare half interest number", Format: "Alphanumeric", MaxLength: 20},
			{Name: "Timeshare_Interval_Number", Description: "Timeshare interval number", Format: "Alphanumeric", MaxLength: 20},
			{Name: "Timeshare_Inventory_Control_Number", Description: "Timeshare inventory control number", Format: "Alphanumeric", MaxLength: 20},
			{Name: "Timeshare_reserve_for_future1", Description: "Reserved field 1 for future use", Format: "String", MaxLength: 50},
			{Name: "Timeshare_reserve_for_future2", Description: "Reserved field 2 for future use", Format: "String", MaxLength: 50},
			{Name: "Timeshare_reserve_for_future3", Description: "Reserved field 3 for future use", Format: "String", MaxLength: 50},
			{Name: "Timeshare_Resort_Estate#", Description: "Timeshare resort estate number", Format: "Alphanumeric", MaxLength: 20},
			{Name: "Timeshare_Unit_Type", Description: "Timeshare unit type", Format: "String", MaxLength: 20},
			{Name: "Timeshare_Use_Period", Description: "Timeshare use period", Format: "String", MaxLength: 20},
			{Name: "Timeshare_Use_Week_#", Description: "Timeshare use week number", Format: "Alphanumeric", MaxLength: 10},
			{Name: "Timeshare_Vacation_Ownership_#", Description: "Timeshare vacation ownership number", Format: "Alphanumeric", MaxLength: 20},
			{Name: "Timeshare_Vacation_Ownership_Interest_#", Description: "Timeshare vacation ownership interest number", Format: "Alphanumeric", MaxLength: 20},
		},
		Trailer: []TrailerColumn{
			{Name: "IsFromModel", Value: ""},
			{Name: "XrefRemarks", Value: ""},
		},
	}
}
