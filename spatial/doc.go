// Package spatial buckets points of a 2D canvas into a uniform grid of square
// cells, enabling radius queries without scanning every point.
//
// What:
//
//   - Grid covers [0,Width]×[0,Height] with Cols×Rows cells of side CellSize.
//   - Insert places a point ID into the cell containing (x,y); coordinates outside
//     the canvas are clamped onto the border cells.
//   - Query collects IDs from every cell within ceil(radius/CellSize) of the
//     query cell. Callers filter by exact distance.
//
// Complexity:
//
//   - Insert: O(1).
//   - Query:  O(k + c), k = IDs in the visited cells, c = visited cells.
//
// Errors:
//
//   - ErrBadCellSize: cell size is not a positive finite number.
//   - ErrBadExtent:   width or height is not a positive finite number.
package spatial
