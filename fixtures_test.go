package jce

// named has a single string field, the smallest struct with a payload.
type named struct {
	Name string
}

func (n *named) EncodeFields(w *Writer) { w.WriteString(0, n.Name) }

func (n *named) DecodeField(r *Reader, h Head) bool {
	if h.Tag != 0 {
		return false
	}
	r.ReadString(h.Type, &n.Name)
	return true
}

// empty has no fields at all.
type empty struct{}

func (*empty) EncodeFields(*Writer)           {}
func (*empty) DecodeField(*Reader, Head) bool { return false }

var (
	tagsCodec   = ListOf(String)
	scoresCodec = MapOf(String, Int64)
	emailCodec  = Optional(String)
)

// person exercises every codec kind, including a recursive optional struct
// at a tag above the one-byte header range.
type person struct {
	Name   string
	Age    int32
	Email  *string
	Tags   []string
	Scores map[string]int64
	Avatar []byte
	Height float64
	Active bool
	Friend *person
}

func (p *person) EncodeFields(w *Writer) {
	w.WriteString(0, p.Name)
	w.WriteInt32(1, p.Age)
	emailCodec.Encode(w, 2, p.Email)
	tagsCodec.Encode(w, 3, p.Tags)
	scoresCodec.Encode(w, 4, p.Scores)
	w.WriteBytes(5, p.Avatar)
	w.WriteFloat64(6, p.Height)
	w.WriteBool(7, p.Active)
	Optional(StructOf[person]()).Encode(w, 20, p.Friend)
}

func (p *person) DecodeField(r *Reader, h Head) bool {
	switch h.Tag {
	case 0:
		r.ReadString(h.Type, &p.Name)
	case 1:
		r.ReadInt32(h.Type, &p.Age)
	case 2:
		emailCodec.Decode(r, h.Type, &p.Email)
	case 3:
		tagsCodec.Decode(r, h.Type, &p.Tags)
	case 4:
		scoresCodec.Decode(r, h.Type, &p.Scores)
	case 5:
		r.ReadBytes(h.Type, &p.Avatar)
	case 6:
		r.ReadFloat64(h.Type, &p.Height)
	case 7:
		r.ReadBool(h.Type, &p.Active)
	case 20:
		Optional(StructOf[person]()).Decode(r, h.Type, &p.Friend)
	default:
		return false
	}
	return true
}

// personV2 is a newer revision of person: same tags plus fields an older
// reader has never seen.
type personV2 struct {
	person
	Nicknames map[int32][]string
	Address   named
	Ratio     float32
	Extra     []byte
	Big       int64
}

func (p *personV2) EncodeFields(w *Writer) {
	p.person.EncodeFields(w)
	MapOf(Int32, ListOf(String)).Encode(w, 8, p.Nicknames)
	StructOf[named]().Encode(w, 9, p.Address)
	w.WriteFloat32(10, p.Ratio)
	w.WriteBytes(200, p.Extra)
	w.WriteInt64(255, p.Big)
}

func (p *personV2) DecodeField(r *Reader, h Head) bool {
	switch h.Tag {
	case 8:
		MapOf(Int32, ListOf(String)).Decode(r, h.Type, &p.Nicknames)
	case 9:
		StructOf[named]().Decode(r, h.Type, &p.Address)
	case 10:
		r.ReadFloat32(h.Type, &p.Ratio)
	case 200:
		r.ReadBytes(h.Type, &p.Extra)
	case 255:
		r.ReadInt64(h.Type, &p.Big)
	default:
		return p.person.DecodeField(r, h)
	}
	return true
}

func samplePerson() person {
	email := "ada@example.com"
	return person{
		Name:   "Ada",
		Age:    36,
		Email:  &email,
		Tags:   []string{"math", "engines", ""},
		Scores: map[string]int64{"analytic": 1 << 40, "difference": -7, "zero": 0},
		Avatar: []byte{0xDE, 0xAD, 0xBE, 0xEF},
		Height: 1.65,
		Active: true,
		Friend: &person{Name: "Charles", Age: 79, Tags: []string{"engines"}},
	}
}

func samplePersonV2() personV2 {
	return personV2{
		person:    samplePerson(),
		Nicknames: map[int32][]string{1: {"Enchantress"}, 300: {"Countess", "Lovelace"}},
		Address:   named{Name: "London"},
		Ratio:     0.5,
		Extra:     make([]byte, 300),
		Big:       -1 << 50,
	}
}
