package kernel

type ApplicantID string

func NewApplicantID(id string) ApplicantID { return ApplicantID(id) }
func (a ApplicantID) String() string       { return string(a) }
func (a ApplicantID) IsEmpty() bool        { return string(a) == "" }

type SheetID string

func NewSheetID(id string) SheetID { return SheetID(id) }
func (s SheetID) String() string   { return string(s) }
func (s SheetID) IsEmpty() bool    { return string(s) == "" }

type Email string

func NewEmail(e string) Email  { return Email(e) }
func (e Email) String() string { return string(e) }
func (e Email) IsEmpty() bool  { return string(e) == "" }

type CountryCode string

func (c CountryCode) String() string { return string(c) }
func (c CountryCode) IsEmpty() bool  { return string(c) == "" }
