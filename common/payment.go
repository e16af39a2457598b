package common

// PaymentKind tags which currency a purchase was settled in.
type PaymentKind string

const (
	PaymentNative PaymentKind = "native"
	PaymentToken  PaymentKind = "token"
)

func (k PaymentKind) IsValid() bool {
	return k == PaymentNative || k == PaymentToken
}

func (k PaymentKind) String() string {
	return string(k)
}
