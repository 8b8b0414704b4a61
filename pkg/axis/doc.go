// Package axis implements the value-axis model: immutable ranges, tick
// generation, auto-ranging, range manipulation (center, resize, zoom, pan)
// and value/coordinate transforms.
//
// # Ranges
//
// [Range] is an immutable closed interval. Every operation returns a new
// value; construction rejects lower > upper with an INVALID_RANGE error.
//
// # Ticks
//
// A [TickFactory] turns a range and a label budget into a [TickSet]. Two
// factories are provided:
//
//   - [NumberTickFactory] picks steps of 1, 2 or 5 times a power of ten.
//   - [CalendarTickFactory] treats values as epoch milliseconds and picks
//     steps in approximate calendar units (see [SelectUnit]).
//
// Factories hold no state between calls; the step and anchors of a
// generation pass are returned in the [TickSet].
//
// # Axes
//
// [ValueAxis] owns a range, a factory and the auto-range settings from
// [Config]. Geometry changes are published synchronously through a
// [Notifier] to registered [Observer] values.
//
// [Participant] is the axis's contribution to edge layout. It answers
// "how thick must this axis be for a given length" by generating ticks for
// that length and measuring their labels.
package axis
