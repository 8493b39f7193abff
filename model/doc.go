// Package model defines ModelData, the plain-data configuration record
// passed by value through build and into raytrace, and the named tunable
// constants the cells/raytrace/graphtopo packages size their work with.
//
// ModelData carries no behavior and no process-wide singleton state: every
// tunable is either an explicit field or one of the named constants below.
// Construct one with New and any number of functional Options; New fills in
// the spec-mandated defaults (MaxSameCounter=5, MaxAllowedHitsNeuron=2,
// MaxAllowedHitsGlia=0) for any option left unset.
package model
