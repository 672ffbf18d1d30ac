// Package fdcttest provides test doubles for the curvelet bridge: a
// deterministic in-process Library, a counting allocator that verifies the
// exactly-once release discipline, and a call-counting Library wrapper.
//
// The fake library is not a curvelet transform. It partitions the input
// along the native first axis into one band per (scale, angle) leaf, which
// gives an exactly invertible decomposition with distinct per-leaf shapes:
// enough structure to exercise every marshalling path without any transform
// numerics.
package fdcttest
