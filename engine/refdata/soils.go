package refdata

import "github.com/agrosense/agrocore/engine/domain"

// builtinSoils are USDA texture-class defaults: field capacity and wilting
// point in % volumetric water content, infiltration in mm/hour.
var builtinSoils = map[domain.SoilTexture]domain.SoilProfile{
	domain.SoilSandy: {
		Texture:          domain.SoilSandy,
		FieldCapacity:    25,
		WiltingPoint:     10,
		InfiltrationRate: 25, // fast drainage
	},
	domain.SoilLoamy: {
		Texture:          domain.SoilLoamy,
		FieldCapacity:    35,
		WiltingPoint:     15,
		InfiltrationRate: 13, // moderate
	},
	domain.SoilClay: {
		Texture:          domain.SoilClay,
		FieldCapacity:    45,
		WiltingPoint:     20,
		InfiltrationRate: 5, // slow drainage
	},
}

// AvailableWaterCapacity is the water a crop can extract between field
// capacity and wilting point, in mm over the root zone.
func AvailableWaterCapacity(fieldCapacity, wiltingPoint, rootDepthCM float64) float64 {
	return (fieldCapacity - wiltingPoint) / 100 * rootDepthCM * 10
}
