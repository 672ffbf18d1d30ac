// Package wasmfdct implements native.Library on top of a fast discrete
// curvelet transform core compiled to WebAssembly, executed with wazero.
//
// # Guest ABI
//
// The guest module must export a linear memory named "memory" and the
// following functions, all taking and returning i32:
//
//	cl_alloc(size) -> ptr              allocate size bytes, 0 on failure
//	cl_free(ptr)                       release an allocation (0 is a no-op)
//	fdct_param(rank, dims, nbscales, nbangles, ac) -> desc
//	fdct_forward(rank, dims, nbscales, nbangles, ac, data) -> desc
//	fdct_inverse(rank, dims, nbscales, nbangles, ac, desc) -> data
//
// dims points at rank little-endian u32 extents in the guest's column-major
// axis order. A zero return from any fdct_* function signals failure.
//
// Complex samples cross the boundary as pairs of little-endian f64 words,
// real part first, 16 bytes per sample.
//
// # Descriptors
//
// fdct_param returns a parameter descriptor:
//
//	u32 nscales
//	u32 hasSample           (0 or 1)
//	u32 nangles[nscales]
//	per leaf, scale-major:
//	    u32 extent[rank]
//	    f64 frequency[rank]
//	    f64 sample[rank]    (only when hasSample is 1)
//
// fdct_forward returns a coefficient descriptor, and fdct_inverse consumes
// one written by the host in the same layout:
//
//	u32 nscales
//	u32 nangles[nscales]
//	per leaf, scale-major:
//	    u32 extent[rank]
//	    u32 data                pointer to the leaf's complex samples
//
// The host owns every pointer it receives: descriptor blocks, the data
// blocks they reference, and inverse results are all released with cl_free
// once their contents have been copied out. Leaf data is decoded into Go
// slices before the corresponding Container is built, so containers handed
// to callers never alias guest memory.
package wasmfdct
