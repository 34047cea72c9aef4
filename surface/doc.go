// Package surface is the spatial model the planner reads and commits to:
// a fixed square plane of classified cells ("pixels"), the resource
// patches grouped over that plane, and the rail paths already committed.
//
// The plane covers cells x, y in [-radius, radius). It is pre-sized and
// never grows; addressing a cell outside it is a contract violation and
// panics.
//
// Views:
//
//	– PixelsView   read-only cells.
//	– PixelsMut    cells, writable.
//	– PatchesView  read-only cells + patches.
//	– PatchesMut   patches writable, cells reachable only through a
//	               read-only PixelsView, so a patch pass cannot write cells.
//	– RailsView    read-only cells + patches + rails.
//
// Operations that must keep cells, patches and rails in step (AddPatch,
// RemovePatches*, AddMinePath, RemoveMinePathAt) live on *Surface itself.
//
// Anti-entropy:
//
//	Validate cross-checks the plane against the patch list: every patch has
//	members, no cell belongs to two patches, and every member cell still
//	carries the patch resource. It panics on the first violation and is
//	meant to run after bulk mutation, not per write. Check returns the same
//	finding as an error.
//
// Isolation:
//
//	Clone is a deep copy. Speculative work (one batch of routes) mutates a
//	clone and throws it away; the original is never locked.
package surface
