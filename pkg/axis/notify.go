package axis

import "github.com/charmbracelet/log"

// MaxNotifyDepth bounds re-entrant notification. An observer that reacts to
// a change by changing an axis again nests one level deeper; beyond this
// depth further notifications are dropped.
const MaxNotifyDepth = 8

// Observer receives axis change notifications.
type Observer interface {
	// AxisChanged reports a change to anything that affects geometry other
	// than the range or the tick factory.
	AxisChanged(a *ValueAxis)
	RangeChanged(a *ValueAxis, prev, next Range)
	TickFactoryChanged(a *ValueAxis)
}

// ObserverFuncs adapts optional callbacks to the Observer interface.
type ObserverFuncs struct {
	OnAxisChanged        func(a *ValueAxis)
	OnRangeChanged       func(a *ValueAxis, prev, next Range)
	OnTickFactoryChanged func(a *ValueAxis)
}

func (o ObserverFuncs) AxisChanged(a *ValueAxis) {
	if o.OnAxisChanged != nil {
		o.OnAxisChanged(a)
	}
}

func (o ObserverFuncs) RangeChanged(a *ValueAxis, prev, next Range) {
	if o.OnRangeChanged != nil {
		o.OnRangeChanged(a, prev, next)
	}
}

func (o ObserverFuncs) TickFactoryChanged(a *ValueAxis) {
	if o.OnTickFactoryChanged != nil {
		o.OnTickFactoryChanged(a)
	}
}

type subscription struct {
	id int
	o  Observer
}

// Notifier fans change events out to observers synchronously, in
// registration order. It is not safe for concurrent use; an axis and its
// notifier belong to a single plot.
type Notifier struct {
	logger  *log.Logger
	subs    []subscription
	nextID  int
	depth   int
	dropped int
}

// NewNotifier returns a notifier that logs dropped events to logger, or to
// the default logger when nil.
func NewNotifier(logger *log.Logger) *Notifier {
	if logger == nil {
		logger = log.Default()
	}
	return &Notifier{logger: logger}
}

// Subscribe registers o and returns a function that removes it.
func (n *Notifier) Subscribe(o Observer) (unsubscribe func()) {
	n.nextID++
	id := n.nextID
	n.subs = append(n.subs, subscription{id: id, o: o})
	return func() {
		for i, s := range n.subs {
			if s.id == id {
				n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of registered observers.
func (n *Notifier) Len() int { return len(n.subs) }

// Dropped returns how many notifications were discarded for exceeding
// MaxNotifyDepth.
func (n *Notifier) Dropped() int { return n.dropped }

func (n *Notifier) NotifyAxisChanged(a *ValueAxis) {
	n.fanOut("axis", func(o Observer) { o.AxisChanged(a) })
}

func (n *Notifier) NotifyRangeChanged(a *ValueAxis, prev, next Range) {
	n.fanOut("range", func(o Observer) { o.RangeChanged(a, prev, next) })
}

func (n *Notifier) NotifyTickFactoryChanged(a *ValueAxis) {
	n.fanOut("tick factory", func(o Observer) { o.TickFactoryChanged(a) })
}

func (n *Notifier) fanOut(kind string, call func(Observer)) {
	if n.depth >= MaxNotifyDepth {
		n.dropped++
		n.logger.Warn("axis notification dropped", "event", kind, "depth", n.depth)
		return
	}
	n.depth++
	defer func() { n.depth-- }()

	// Observers may unsubscribe while being notified.
	subs := append([]subscription(nil), n.subs...)
	for _, s := range subs {
		call(s.o)
	}
}
