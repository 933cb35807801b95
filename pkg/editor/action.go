package editor

// Action is a user intent sent from the presentation layer to a Session.
type Action interface {
	action()
}

// Select starts editing the record at Index.
type Select struct{ Index int }

// New starts a fresh record from the kind's template.
type New struct{}

// EditField replaces the text of one form control.
type EditField struct {
	Field string
	Text  string
}

// EditBody replaces the markdown body.
type EditBody struct{ Text string }

// Save reconciles the form and persists the collection.
type Save struct{}

// Reload re-reads the collection from its store and drops the selection.
type Reload struct{}

func (Select) action()    {}
func (New) action()       {}
func (EditField) action() {}
func (EditBody) action()  {}
func (Save) action()      {}
func (Reload) action()    {}
