package entity

import (
	"time"
)

type DiscountType string

const (
	DiscountTypeFixed   DiscountType = "fixed"
	DiscountTypePercent DiscountType = "percent"
)

type Coupon struct {
	Base
	Code          string       `db:"code"`
	Description   string       `db:"description"`
	DiscountType  DiscountType `db:"discount_type"`
	DiscountValue int64        `db:"discount_value"` // minor units, or percent when type is percent
	MaxDiscount   int64        `db:"max_discount"`   // cap for percent coupons, 0 = no cap
	MinOrderValue int64        `db:"min_order_value"`
	ValidFrom     time.Time    `db:"valid_from"`
	ValidTo       time.Time    `db:"valid_to"`
	IsActive      bool         `db:"is_active"`
}
