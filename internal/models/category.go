package models

type Category string

const (
	CategoryDining         Category = "dining"
	CategoryTravel         Category = "travel"
	CategoryGroceries      Category = "groceries"
	CategoryGas            Category = "gas"
	CategoryEntertainment  Category = "entertainment"
	CategoryOnlineShopping Category = "online_shopping"
	CategoryOther          Category = "other"
)

// Categories lists every spending category in a fixed order.
var Categories = []Category{
	CategoryDining,
	CategoryTravel,
	CategoryGroceries,
	CategoryGas,
	CategoryEntertainment,
	CategoryOnlineShopping,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type RewardType string

const (
	RewardTypeCashback RewardType = "cashback"
	RewardTypePoints   RewardType = "points"
	RewardTypeMiles    RewardType = "miles"
)

func (r RewardType) Valid() bool {
	switch r {
	case RewardTypeCashback, RewardTypePoints, RewardTypeMiles:
		return true
	}
	return false
}
