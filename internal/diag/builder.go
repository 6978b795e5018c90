package diag

func New(sev Severity, code Code, msg string) Record {
	return Record{
		Severity: sev,
		Code:     code,
		Message:  msg,
	}
}

func NewError(msg string) Record {
	return New(SevError, "", msg)
}

func NewWarning(msg string) Record {
	return New(SevWarning, "", msg)
}

func (r Record) At(file string, line, col int) Record {
	r.Location = &Location{File: file, Line: line, Column: col}
	return r
}

func (r Record) WithContext(lines ...string) Record {
	r.Extended = append(append([]string(nil), r.Extended...), lines...)
	return r
}
