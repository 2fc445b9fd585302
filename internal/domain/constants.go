package domain

import "github.com/shopspring/decimal"

// Business validation constants
const (
	MinMotifLength        = 1
	MaxMotifLength        = 100
	MaxObservationsLength = 500
	MinLineQuantity       = 1
	MaxLineQuantity       = 99
	MaxLinesPerRequest    = 20
	MinPage               = 1
	MinPageSize           = 1
	MaxPageSize           = 100
	DefaultPageSize       = 20
)

// MaxTotalValue is the ceiling of NUMERIC(12,2)
var MaxTotalValue = decimal.RequireFromString("9999999999.99")

// Time format constants
const (
	TimeFormat = "15:04:05"   // HH:MM:SS
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
