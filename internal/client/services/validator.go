package services

import (
	"github.com/dmitrijs2005/suimirror/internal/client/mirror"
	"github.com/dmitrijs2005/suimirror/internal/client/models"
)

// Validator answers "would this name or tag collide?" against the mirror,
// without a server round trip. Each check returns true when the value is a
// duplicate, after notifying the user.
type Validator interface {
	// CheckClientName reports whether name is already used by a client other
	// than id. id <= 0 means a client that does not exist yet.
	CheckClientName(id int, name string) bool
	// CheckBulkClientNames reports whether names repeat among themselves or
	// with any existing client.
	CheckBulkClientNames(names []string) bool
	// CheckTag does the same as CheckClientName for the tag of an inbound,
	// outbound, service or endpoint. Any other object class is never a
	// duplicate.
	CheckTag(object string, id int, tag string) bool
}

type validator struct {
	Deps
}

func NewValidator(d Deps) Validator {
	return &validator{Deps: d.normalize()}
}

func (v *validator) CheckClientName(id int, name string) bool {
	clients := v.Mirror.Clients()
	old, hasOld := lastByID(clients, id)
	if hasOld && old.Name == name {
		return false
	}
	for _, c := range clients {
		if c.Name == name {
			v.duplicate("client.name")
			return true
		}
	}
	return false
}

func (v *validator) CheckBulkClientNames(names []string) bool {
	fresh := make(map[string]struct{}, len(names))
	for _, n := range names {
		fresh[n] = struct{}{}
	}

	existing := make(map[string]struct{})
	for _, c := range v.Mirror.Clients() {
		existing[c.Name] = struct{}{}
	}

	union := len(existing)
	for n := range fresh {
		if _, ok := existing[n]; !ok {
			union++
		}
	}

	if len(fresh) != len(names) || len(existing)+len(fresh) != union {
		v.duplicate("client.name")
		return true
	}
	return false
}

func (v *validator) CheckTag(object string, id int, tag string) bool {
	var c mirror.Collection
	switch object {
	case "inbound":
		c = mirror.Inbounds
	case "outbound":
		c = mirror.Outbounds
	case "service":
		c = mirror.Services
	case "endpoint":
		c = mirror.Endpoints
	default:
		return false
	}

	objects := v.Mirror.Collection(c)
	old, hasOld := lastByID(objects, id)
	if hasOld && old.Tag == tag {
		return false
	}
	for _, o := range objects {
		if o.Tag == tag {
			v.duplicate("objects.tag")
			return true
		}
	}
	return false
}

func (v *validator) duplicate(fieldKey string) {
	v.notifyError(v.Printer.T("error.dplData") + ": " + v.Printer.T(fieldKey))
}

// lastByID returns the last object with the given id. Duplicated ids should
// not occur, but the last one wins when they do.
func lastByID(objects []models.Object, id int) (models.Object, bool) {
	if id <= 0 {
		return models.Object{}, false
	}
	for i := len(objects) - 1; i >= 0; i-- {
		if objects[i].ID == uint(id) {
			return objects[i], true
		}
	}
	return models.Object{}, false
}
