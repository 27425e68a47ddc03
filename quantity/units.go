package quantity

type (
	Percent                   struct{}
	MillionCellsPerMilliliter struct{}
	CellsPerMilliliter        struct{}
	Micrometer                struct{}
	Cell                      struct{}
	Unitless                  struct{}
	Number                    struct{}
	RelativeFluorescenceUnit  struct{}
	MilliAbsorbanceUnit       struct{}
	RelativeLightUnit         struct{}
	Nanometer                 struct{}
	DegreeCelsius             struct{}
	Second                    struct{}
	Microliter                struct{}
	Milliliter                struct{}
)

func (Percent) Symbol() string                   { return "%" }
func (MillionCellsPerMilliliter) Symbol() string { return "10^6 cells/mL" }
func (CellsPerMilliliter) Symbol() string        { return "cells/mL" }
func (Micrometer) Symbol() string                { return "µm" }
func (Cell) Symbol() string                      { return "cell" }
func (Unitless) Symbol() string                  { return "(unitless)" }
func (Number) Symbol() string                    { return "#" }
func (RelativeFluorescenceUnit) Symbol() string  { return "RFU" }
func (MilliAbsorbanceUnit) Symbol() string       { return "mAU" }
func (RelativeLightUnit) Symbol() string         { return "RLU" }
func (Nanometer) Symbol() string                 { return "nm" }
func (DegreeCelsius) Symbol() string             { return "degC" }
func (Second) Symbol() string                    { return "s" }
func (Microliter) Symbol() string                { return "µL" }
func (Milliliter) Symbol() string                { return "mL" }

// ASM class names.
type (
	TQuantityValuePercent                   = Quantity[Percent]
	TQuantityValueMillionCellsPerMilliliter = Quantity[MillionCellsPerMilliliter]
	TQuantityValueCellsPerMilliliter        = Quantity[CellsPerMilliliter]
	TQuantityValueMicrometer                = Quantity[Micrometer]
	TQuantityValueCell                      = Quantity[Cell]
	TQuantityValueUnitless                  = Quantity[Unitless]
	TQuantityValueNumber                    = Quantity[Number]
	TQuantityValueRelativeFluorescenceUnit  = Quantity[RelativeFluorescenceUnit]
	TQuantityValueMilliAbsorbanceUnit       = Quantity[MilliAbsorbanceUnit]
	TQuantityValueRelativeLightUnit         = Quantity[RelativeLightUnit]
	TQuantityValueNanometer                 = Quantity[Nanometer]
	TQuantityValueDegreeCelsius             = Quantity[DegreeCelsius]
	TQuantityValueSecond                    = Quantity[Second]
	TQuantityValueMicroliter                = Quantity[Microliter]
	TQuantityValueMilliliter                = Quantity[Milliliter]
)

func init() {
	register[Percent]()
	register[MillionCellsPerMilliliter]()
	register[CellsPerMilliliter]()
	register[Micrometer]()
	register[Cell]()
	register[Unitless]()
	register[Number]()
	register[RelativeFluorescenceUnit]()
	register[MilliAbsorbanceUnit]()
	register[RelativeLightUnit]()
	register[Nanometer]()
	register[DegreeCelsius]()
	register[Second]()
	register[Microliter]()
	register[Milliliter]()
}
