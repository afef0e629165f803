package models

// Identity oturum açmış üyenin istek boyunca taşınan kimliğidir.
// Session'dan bir kez okunur ve servislere açıkça parametre olarak verilir.
type Identity struct {
	MemberID uint   `json:"member_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// IdentityFromMember üye kaydından kimlik üretir.
func IdentityFromMember(m *Member) Identity {
	return Identity{
		MemberID: m.ID,
		FullName: m.FullName,
		Email:    m.Email,
		Role:     m.Role,
	}
}
