package sources

// YouTube Innertube implementation is split across three files by responsibility:
//   innertube.go — API constants, shared types, low-level HTTP primitives, JSON walking
//   browse.go    — channel and playlist video listing with continuation pagination
//   player.go    — per-video metadata via the /player endpoint
