package diag

// Reporter - минимальный контракт получения диагностик.
// Реализация по умолчанию: BagReporter (кладёт в Bag).
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter - адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// ReportError converts err with FromError and reports it. It returns false
// when err is nil.
func ReportError(r Reporter, err error) bool {
	if err == nil {
		return false
	}
	if r != nil {
		r.Report(FromError(err))
	}
	return true
}
