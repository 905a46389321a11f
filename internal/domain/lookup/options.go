package lookup

// Option configures a Store.
type Option func(*Store)

// WithTable registers the score table of one subject.
func WithTable(subject string, t Table) Option {
	return func(s *Store) {
		cp := make(Table, len(t))
		for key, row := range t {
			r := make(map[string]Cell, len(row))
			for id, cell := range row {
				r[id] = cell
			}
			cp[key] = r
		}
		s.tables[subject] = cp
	}
}

// WithCurve registers a named transform curve.
func WithCurve(name string, c Curve) Option {
	return func(s *Store) {
		cp := make(Curve, len(c))
		for k, v := range c {
			cp[k] = v
		}
		s.curves[name] = cp
	}
}

// WithAdvantage sets the peer-average rows.
func WithAdvantage(rows []AdvantageRow) Option {
	return func(s *Store) {
		s.advantage = append([]AdvantageRow(nil), rows...)
	}
}

// WithPercentile sets the cumulative percentile table.
func WithPercentile(points []PercentilePoint) Option {
	return func(s *Store) {
		s.percentile = append([]PercentilePoint(nil), points...)
	}
}
