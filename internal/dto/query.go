package dto

// AssetListQuery is bound from the /api/assets query string.
type AssetListQuery struct {
	PageSize int    `query:"pageSize" validate:"omitempty,gte=1,lte=5000"`
	Building string `query:"building" validate:"max=128"`
	Status   string `query:"status" validate:"max=64"`
}

// CollectionListQuery is bound from /api/collections/:collection.
type CollectionListQuery struct {
	Collection string `param:"collection" validate:"required,collection"`
	PageSize   int    `query:"pageSize" validate:"omitempty,gte=1,lte=5000"`
}
