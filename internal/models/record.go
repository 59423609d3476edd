package models

// Record is one row of an upstream collection. The upstream owns the schema;
// only the fields named below are ever read. Numeric values are decoded as
// json.Number so amounts keep the precision the upstream sent.
type Record map[string]any

// Upstream collection names.
const (
	CollectionAsset                = "Asset"
	CollectionInstance             = "Instance"
	CollectionBuildings            = "Buildings"
	CollectionRooms                = "Rooms"
	CollectionVendor               = "Vendor"
	CollectionSRBDetails           = "SRB_Details"
	CollectionPurchaseOrderDetails = "Purchase_Order_Details"
	CollectionAssetCondition       = "Asset_Condition"
	CollectionAssetCoverageHistory = "Asset_Coverage_History"
	CollectionAssetMovement        = "Asset_Movement"
	CollectionAssetSpecifications  = "Asset_Specifications"
	CollectionAttachedDocuments    = "Attached_Documents"
	CollectionMaintenanceLog       = "Maintenance_Log"
	CollectionDepartments          = "departments"
)

// KnownCollections lists every collection that may be listed through the API.
var KnownCollections = []string{
	CollectionAsset,
	CollectionInstance,
	CollectionBuildings,
	CollectionRooms,
	CollectionVendor,
	CollectionSRBDetails,
	CollectionPurchaseOrderDetails,
	CollectionAssetCondition,
	CollectionAssetCoverageHistory,
	CollectionAssetMovement,
	CollectionAssetSpecifications,
	CollectionAttachedDocuments,
	CollectionMaintenanceLog,
	CollectionDepartments,
}

// IsKnownCollection reports whether name is one of KnownCollections.
func IsKnownCollection(name string) bool {
	for _, c := range KnownCollections {
		if c == name {
			return true
		}
	}
	return false
}

// Field names read by the aggregators and filters.
const (
	FieldID            = "id"
	FieldSRBNumber     = "SRB_No"
	FieldSRBAmount     = "SRB_Amount"
	FieldAssetCode     = "Asset_Code"
	FieldDescription   = "Description"
	FieldAssetIsActive = "Is_Active"
	FieldAssetBuilding = "Building_Id"
)

// Get returns the raw value of field and whether the field was present.
func (r Record) Get(field string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r[field]
	return v, ok
}

// Page is one window of a collection as returned by a single list call.
// Total is nil when the upstream did not report meta.count.
type Page struct {
	Records []Record
	Total   *int
}
