// Package fragment implements the substring fragment graph and the
// walk engine that scores it: a DAG where every node corresponds to a
// materialised fragment (a prefix or suffix trimmed one character at a
// time from some registered keyword), nodes carry direct item
// membership, and parent edges point from a fragment to the one
// keyword-or-fragment it was trimmed from.
//
// # Overview
//
// Registering a keyword "house" for an item creates (or reuses) a
// chain of nodes: "house" -> {"hous", "ouse"} and "hous" -> {"hou",
// "ous"} and so on down to single characters, each edge pointing from
// the shorter fragment to the longer one it was trimmed from (the
// "parent"). Because both the length-one-shorter prefix and the
// length-one-shorter suffix are materialised at every step, any
// contiguous substring of any keyword is reachable from that keyword
// by walking parent edges one character at a time, regardless of
// where the substring sits inside the keyword. Preserving that
// reachability property is this package's central invariant.
//
// # Architecture
//
// The graph is organized as a flat arena with a lookup index, not a
// pointer-chasing tree:
//
//	┌─────────────────────────────────────────────┐
//	│                  Graph[T]                     │
//	│                                               │
//	│  index: map[fragment string]nodeID            │
//	│                                               │
//	│  nodes: []node[T]          (the arena)         │
//	│    ┌────────┬────────┬────────┬────────┐     │
//	│    │ node 0 │ node 1 │ node 2 │  ...    │     │
//	│    └────────┴────────┴────────┴────────┘     │
//	│        │         ▲        ▲                   │
//	│        │ parents  \______/                     │
//	│        ▼  (nodeIDs into the same arena)        │
//	│    ┌─────────────────────────────┐             │
//	│    │ items: map[T]struct{}        │             │
//	│    │ parents: map[int]struct{}    │             │
//	│    │ resultHint, visitedHint int  │             │
//	│    └─────────────────────────────┘             │
//	└─────────────────────────────────────────────┘
//
//	Example: registering "house" and "hose" for two different items
//	shares the "ho" and "se" sub-fragments and the single letters
//	"h", "o", "s", "e", the substrings common to both words; "house"
//	and "hose" themselves remain distinct leaf-ward nodes.
//
// # Core Components
//
// node[T]: one vertex, stored by value in the arena
//   - fragment: the owned, interned string this node represents
//   - items: direct membership — items registered under exactly this
//     fragment as a keyword
//   - parents: node IDs of the longer fragments this one was trimmed
//     from; a node with no items and no parents is dead and is pruned
//   - resultHint, visitedHint: advisory pre-allocation sizes for the
//     next Walk rooted here, updated after every Walk
//
// Graph[T]: the arena plus its fragment -> nodeID index
//   - Register(item, keyword): build whatever nodes are missing
//   - Unregister(item, keyword): drop membership and prune orphans
//   - Walk(startFragment, scorer): upward BFS with max-aggregation
//   - NodeExists, FragmentCount: read-only queries; the coordinator
//     reports FragmentCount in its Stats
//
// # Representation
//
// Nodes live in an arena: a single []node[T] slice owned by the
// Graph, addressed by a plain slice index (nodeID). This gives the
// fragment -> node lookup for free (map[string]nodeID) and avoids a
// pointer-chasing graph of individually heap-allocated nodes. Parent
// links are nodeIDs into the same arena, never pointers. A pruned
// node's slot is marked removed and its maps are dropped, but the
// slot itself is not reused or compacted — nodeIDs remain stable for
// the lifetime of the Graph, which keeps parent links valid without
// any renumbering pass.
//
// # Lifecycle
//
// A node is created the first time its fragment is seen and is
// removed the moment it has neither items nor parents left. Removal
// recurses into a node's two children, dropping their parent link to
// the removed node and deleting them in turn if they become
// orphaned.
//
// # Concurrency and Thread Safety
//
// Graph itself holds no lock: callers (the coordinator) serialize all
// mutating calls under an exclusive lock and allow concurrent Walk
// calls under a shared lock.
//
// Locking strategy:
//   - Register and Unregister must never run concurrently with each
//     other or with a Walk; the coordinator enforces this with its own
//     exclusive lock.
//   - Walk only reads graph state (the fragment index, node items and
//     parents) and is safe to call concurrently with other Walk calls
//     under a shared lock, because no Walk mutates that state.
//   - Walk does update each visited node's advisory size hints
//     (resultHint, visitedHint); that write is allowed to race under
//     concurrent Walks by design (see DESIGN.md) since the hints are
//     only ever used to pre-size the next Walk's accumulators and are
//     never consulted for correctness.
//
// # Performance
//
//   - Register: O(|keyword|^2) worst case (one new node per distinct
//     substring, n(n+1)/2 for a keyword of length n sharing nothing),
//     O(1) when the keyword's node already exists.
//   - Unregister: O(|keyword|^2) worst case to prune every orphaned
//     shorter fragment beneath the keyword's node.
//   - Walk: O(number of nodes reachable parent-wards from the start
//     fragment), each visited once via a visited-set keyed by nodeID;
//     the scorer runs once per visited node carrying direct item
//     membership, not once per item.
//   - NodeExists, FragmentCount: O(1).
package fragment
