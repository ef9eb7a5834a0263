// Package roots defines the data contracts of the roots shading core: the
// shared camera uniform block, the light records, the per-vertex and
// per-instance records of the three shading programs, and the unit geometry
// the pipelines instance. Every type here mirrors a WGSL struct byte for
// byte; the Bytes methods produce the exact little-endian layout the GPU
// reads.
//
// The GPU-facing side (embedded WGSL programs, bind group layouts, render
// pipelines, resource managers) lives in the pipeline sub-package.
package roots
