package gpio

// Descs records the descriptors created by GetArray.
type Descs struct {
	Desc []*Desc
}

// GetArray opens ids in order. It stops at the first id that fails to
// resolve and returns that error together with the descriptors created so
// far; those are not rolled back and must be released with PutArray.
func (s *Subsystem) GetArray(ids []uint16) (*Descs, error) {
	out := &Descs{Desc: make([]*Desc, 0, len(ids))}
	for _, id := range ids {
		d, err := s.Open(id)
		if err != nil {
			return out, err
		}
		out.Desc = append(out.Desc, d)
	}
	return out, nil
}

// PutArray destroys exactly the descriptors recorded in ds.
func (s *Subsystem) PutArray(ds *Descs) {
	if ds == nil {
		return
	}
	for _, d := range ds.Desc {
		s.Destroy(d)
	}
	ds.Desc = ds.Desc[:0]
}
