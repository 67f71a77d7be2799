package device

import "devobj-go/errcode"

// Commands understood by the template class. They do nothing.
const (
	TemplateTest1 uint8 = iota
	TemplateTest2
)

// Template is a scaffold for new device types. It never creates a device
// and rejects every request.
var Template Class = templateClass{}

type templateClass struct{}

func (templateClass) Create(any) (Descriptor, error) {
	return nil, errcode.New("template.create", errcode.Unsupported, "scaffold only")
}

func (templateClass) Destroy(Descriptor) {}

func (templateClass) Control(_ Descriptor, op Opcode, _ any) error {
	if op.Tag() != TagTemplate {
		return errcode.Fail
	}
	switch op.Nr() {
	case TemplateTest1, TemplateTest2:
		// Device-specific handling goes here.
	}
	return errcode.Fail
}
