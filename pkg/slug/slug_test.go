package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain ascii", "Kablosuz Kulaklik", "kablosuz-kulaklik"},
		{"upper case", "USB-C KABLO", "usb-c-kablo"},
		{"dotless i", "Kadın Çanta", "kadin-canta"},
		{"dotted capital i", "İzmir Lokumu", "izmir-lokumu"},
		{"all turkish upper", "IŞIKLI GÖZLÜK", "isikli-gozluk"},
		{"soft g and cedilla", "Ağaç Oyuncak Seti", "agac-oyuncak-seti"},
		{"other diacritics", "Crème Brûlée Kalıbı", "creme-brulee-kalibi"},
		{"tilde", "Niño Şarkısı", "nino-sarkisi"},
		{"punctuation", "Telefon Kılıfı (iPhone 15) - Siyah!", "telefon-kilifi-iphone-15-siyah"},
		{"symbols", "%50 İndirim & Ücretsiz Kargo", "50-indirim-ucretsiz-kargo"},
		{"whitespace runs", "  Çay \t  Bardağı  ", "cay-bardagi"},
		{"hyphen runs", "a---b - - c", "a-b-c"},
		{"edge hyphens", "-ürün-", "urun"},
		{"digits only", "2024", "2024"},
		{"single letter", "Ö", "o"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.in))
		})
	}
}

func TestGenerate_NothingUsable(t *testing.T) {
	for _, in := range []string{"", "   ", "!!!", "---", "́"} {
		assert.Empty(t, Generate(in), "input %q", in)
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	for _, in := range []string{"Güneş Gözlüğü", "Erkek Spor Ayakkabı 42 Numara"} {
		once := Generate(in)
		assert.Equal(t, once, Generate(once))
	}
}
