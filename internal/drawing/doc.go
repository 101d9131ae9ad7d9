// Package drawing implements Drawing: the record of one candidate
// embedding of a CombGraph onto a GridGraph.
//
// A Drawing is a pair of maps — CombNode to settled sink, CombEdge to
// routed sink/port path — plus the running score both embedders optimize.
// It never owns a GridGraph; instead it can be applied to one (settling
// sinks, claiming grid edges) or erased from one, so the same Drawing value
// can be scored against a scratch grid during local search candidate
// evaluation without disturbing the grid the rest of the run depends on.
package drawing
