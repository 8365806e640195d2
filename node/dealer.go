package node

// Dealer hands out models that still need a visit, each exactly once.
type Dealer struct {
	needs map[string]Populator
	done  map[string]struct{}
}

// NextNeeds returns a pending model and marks it done.
func (d *Dealer) NextNeeds() (model Populator, ok bool) {
	if len(d.needs) == 0 {
		return
	}

	for name, pending := range d.needs {
		delete(d.needs, name)

		if _, exists := d.done[name]; !exists {
			d.Done(pending)

			return pending, true
		}
	}

	return
}

// Needs queues model unless it was already handed out.
func (d *Dealer) Needs(model Populator) {
	if d.needs == nil {
		d.needs = make(map[string]Populator)
	}

	if _, exists := d.done[model.Name()]; !exists {
		d.needs[model.Name()] = model
	}
}

func (d *Dealer) Done(model Populator) {
	if d.done == nil {
		d.done = make(map[string]struct{})
	}

	delete(d.needs, model.Name())
	d.done[model.Name()] = struct{}{}
}
