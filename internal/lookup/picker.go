package lookup

// Key is a navigation key understood by Picker.
type Key string

const (
	KeyArrowDown Key = "ArrowDown"
	KeyArrowUp   Key = "ArrowUp"
	KeyEnter     Key = "Enter"
	KeyEscape    Key = "Escape"
)

// Picker tracks the suggestion list state of one autocomplete field.
// It is not safe for concurrent use.
type Picker[T Named] struct {
	options  []T
	query    string
	value    string
	open     bool
	active   int
	selected *T
}

// NewPicker starts closed with the query mirroring value.
func NewPicker[T Named](value string) *Picker[T] {
	return &Picker[T]{value: value, query: value, active: -1}
}

// SetOptions replaces the loaded options.
func (p *Picker[T]) SetOptions(options []T) {
	p.options = options
	p.resetActive()
}

// SetValue syncs the query with an externally changed field value.
func (p *Picker[T]) SetValue(value string) {
	p.value = value
	p.query = value
	p.resetActive()
}

// Type updates the query and opens the list.
func (p *Picker[T]) Type(query string) {
	p.query = query
	p.open = true
	p.resetActive()
}

func (p *Picker[T]) Focus() {
	p.open = true
	p.resetActive()
}

// Blur closes the list and drops an uncommitted query.
func (p *Picker[T]) Blur() {
	p.open = false
	p.query = p.value
	p.resetActive()
}

// Key handles a navigation key. It returns the option chosen by Enter.
func (p *Picker[T]) Key(k Key) (T, bool) {
	var zero T

	if !p.open && (k == KeyArrowDown || k == KeyArrowUp) {
		p.open = true
		p.resetActive()
		return zero, false
	}

	if k == KeyEscape {
		p.open = false
		p.resetActive()
		return zero, false
	}

	filtered := p.Filtered()
	n := len(filtered)
	if n == 0 {
		return zero, false
	}

	switch k {
	case KeyArrowDown:
		if p.active == -1 {
			p.active = 0
		} else {
			p.active = (p.active + 1) % n
		}
	case KeyArrowUp:
		if p.active == -1 {
			p.active = n - 1
		} else {
			p.active = (p.active - 1 + n) % n
		}
	case KeyEnter:
		if p.open && p.active >= 0 && p.active < n {
			opt := filtered[p.active]
			p.Select(opt)
			return opt, true
		}
	}
	return zero, false
}

// Select commits opt's label as the field value and closes the list.
func (p *Picker[T]) Select(opt T) {
	p.selected = &opt
	p.value = opt.Label()
	p.query = p.value
	p.open = false
	p.resetActive()
}

// Filtered returns the options matching the current query.
func (p *Picker[T]) Filtered() []T {
	return Filter(p.options, p.query)
}

func (p *Picker[T]) IsOpen() bool { return p.open }

func (p *Picker[T]) ActiveIndex() int { return p.active }

func (p *Picker[T]) Query() string { return p.query }

func (p *Picker[T]) Value() string { return p.value }

// Selected returns the last committed option, if any.
func (p *Picker[T]) Selected() (T, bool) {
	if p.selected == nil {
		var zero T
		return zero, false
	}
	return *p.selected, true
}

func (p *Picker[T]) resetActive() {
	if p.open && len(p.Filtered()) > 0 {
		p.active = 0
	} else {
		p.active = -1
	}
}
