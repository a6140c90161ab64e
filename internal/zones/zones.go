// Package zones lists the JAKIM prayer-time zones of Malaysia and maps a
// detected location onto one of them.
package zones

import (
	"sort"
	"strings"

	"github.com/smokyabdulrahman/waktu-solat/internal/geo"
)

// Zone is one JAKIM zone.
type Zone struct {
	Code  string `json:"code"`
	State string `json:"state"`
	Areas string `json:"areas"`
}

var catalogue = []Zone{
	{"JHR01", "Johor", "Pulau Aur dan Pulau Pemanggil"},
	{"JHR02", "Johor", "Johor Bahru, Kota Tinggi, Mersing, Kulai"},
	{"JHR03", "Johor", "Kluang, Pontian"},
	{"JHR04", "Johor", "Batu Pahat, Muar, Segamat, Gemas Johor, Tangkak"},
	{"KDH01", "Kedah", "Kota Setar, Kubang Pasu, Pokok Sena"},
	{"KDH02", "Kedah", "Kuala Muda, Yan, Pendang"},
	{"KDH03", "Kedah", "Padang Terap, Sik"},
	{"KDH04", "Kedah", "Baling"},
	{"KDH05", "Kedah", "Bandar Baharu, Kulim"},
	{"KDH06", "Kedah", "Langkawi"},
	{"KDH07", "Kedah", "Puncak Gunung Jerai"},
	{"KTN01", "Kelantan", "Bachok, Kota Bharu, Machang, Pasir Mas, Pasir Puteh, Tanah Merah, Tumpat, Kuala Krai, Mukim Chiku"},
	{"KTN02", "Kelantan", "Gua Musang, Jeli, Jajahan Kecil Lojing"},
	{"MLK01", "Melaka", "Seluruh Negeri Melaka"},
	{"NGS01", "Negeri Sembilan", "Tampin, Jempol"},
	{"NGS02", "Negeri Sembilan", "Jelebu, Kuala Pilah, Rembau"},
	{"NGS03", "Negeri Sembilan", "Port Dickson, Seremban"},
	{"PHG01", "Pahang", "Pulau Tioman"},
	{"PHG02", "Pahang", "Kuantan, Pekan, Muadzam Shah"},
	{"PHG03", "Pahang", "Jerantut, Temerloh, Maran, Bera, Chenor, Jengka"},
	{"PHG04", "Pahang", "Bentong, Lipis, Raub"},
	{"PHG05", "Pahang", "Genting Sempah, Janda Baik, Bukit Tinggi"},
	{"PHG06", "Pahang", "Cameron Highlands, Genting Highlands, Bukit Fraser"},
	{"PLS01", "Perlis", "Kangar, Padang Besar, Arau"},
	{"PNG01", "Pulau Pinang", "Seluruh Negeri Pulau Pinang"},
	{"PRK01", "Perak", "Tapah, Slim River, Tanjung Malim"},
	{"PRK02", "Perak", "Kuala Kangsar, Sungai Siput, Ipoh, Batu Gajah, Kampar"},
	{"PRK03", "Perak", "Lenggong, Pengkalan Hulu, Grik"},
	{"PRK04", "Perak", "Temengor, Belum"},
	{"PRK05", "Perak", "Kampung Gajah, Teluk Intan, Bagan Datuk, Seri Iskandar, Beruas, Parit, Lumut, Sitiawan, Pulau Pangkor"},
	{"PRK06", "Perak", "Selama, Taiping, Bagan Serai, Parit Buntar"},
	{"PRK07", "Perak", "Bukit Larut"},
	{"SBH01", "Sabah", "Sandakan, Bukit Garam, Semawang, Temanggong, Tambisan"},
	{"SBH02", "Sabah", "Beluran, Telupid, Pinangah, Terusan, Kuamut"},
	{"SBH03", "Sabah", "Lahad Datu, Silabukan, Kunak, Sahabat, Semporna, Tungku"},
	{"SBH04", "Sabah", "Tawau, Balong, Merotai, Kalabakan"},
	{"SBH05", "Sabah", "Kudat, Kota Marudu, Pitas, Pulau Banggi"},
	{"SBH06", "Sabah", "Gunung Kinabalu"},
	{"SBH07", "Sabah", "Kota Kinabalu, Ranau, Kota Belud, Tuaran, Penampang, Papar, Putatan"},
	{"SBH08", "Sabah", "Pensiangan, Keningau, Tambunan, Nabawan"},
	{"SBH09", "Sabah", "Beaufort, Kuala Penyu, Sipitang, Tenom, Long Pasia, Membakut, Weston"},
	{"SGR01", "Selangor", "Gombak, Petaling, Sepang, Hulu Langat, Hulu Selangor, Shah Alam"},
	{"SGR02", "Selangor", "Kuala Selangor, Sabak Bernam"},
	{"SGR03", "Selangor", "Klang, Kuala Langat"},
	{"SWK01", "Sarawak", "Limbang, Lawas, Sundar, Trusan"},
	{"SWK02", "Sarawak", "Miri, Niah, Bekenu, Sibuti, Marudi"},
	{"SWK03", "Sarawak", "Pandan, Belaga, Suai, Tatau, Sebauh, Bintulu"},
	{"SWK04", "Sarawak", "Sibu, Mukah, Dalat, Song, Igan, Oya, Balingian, Kanowit, Kapit"},
	{"SWK05", "Sarawak", "Sarikei, Matu, Julau, Rajang, Daro, Bintangor, Belawai"},
	{"SWK06", "Sarawak", "Lubok Antu, Sri Aman, Roban, Debak, Kabong, Lingga, Engkelili, Betong, Spaoh, Pusa, Saratok"},
	{"SWK07", "Sarawak", "Serian, Simunjan, Samarahan, Sebuyau, Meludam"},
	{"SWK08", "Sarawak", "Kuching, Bau, Lundu, Sematan"},
	{"SWK09", "Sarawak", "Kampung Patarikan"},
	{"TRG01", "Terengganu", "Kuala Terengganu, Marang, Kuala Nerus"},
	{"TRG02", "Terengganu", "Besut, Setiu"},
	{"TRG03", "Terengganu", "Hulu Terengganu"},
	{"TRG04", "Terengganu", "Dungun, Kemaman"},
	{"WLY01", "Wilayah Persekutuan", "Kuala Lumpur, Putrajaya"},
	{"WLY02", "Wilayah Persekutuan", "Labuan"},
}

// stateAliases maps English region names returned by IP lookups to the
// Malay state names used in the catalogue.
var stateAliases = map[string]string{
	"penang":                 "Pulau Pinang",
	"malacca":                "Melaka",
	"kuala lumpur":           "Wilayah Persekutuan",
	"putrajaya":              "Wilayah Persekutuan",
	"labuan":                 "Wilayah Persekutuan",
	"federal territory":      "Wilayah Persekutuan",
	"wilayah persekutuan kl": "Wilayah Persekutuan",
}

// All returns every zone in code order.
func All() []Zone {
	out := make([]Zone, len(catalogue))
	copy(out, catalogue)
	return out
}

// Lookup finds a zone by code, ignoring case.
func Lookup(code string) (Zone, bool) {
	for _, z := range catalogue {
		if strings.EqualFold(z.Code, code) {
			return z, true
		}
	}
	return Zone{}, false
}

// States returns the distinct state names, sorted.
func States() []string {
	seen := map[string]bool{}
	var out []string
	for _, z := range catalogue {
		if !seen[z.State] {
			seen[z.State] = true
			out = append(out, z.State)
		}
	}
	sort.Strings(out)
	return out
}

// ForState returns the zones of a state. English aliases such as "Penang"
// are accepted.
func ForState(state string) []Zone {
	name := canonicalState(state)
	var out []Zone
	for _, z := range catalogue {
		if strings.EqualFold(z.State, name) {
			out = append(out, z)
		}
	}
	return out
}

func canonicalState(s string) string {
	s = strings.TrimSpace(s)
	if alias, ok := stateAliases[strings.ToLower(s)]; ok {
		return alias
	}
	return s
}

// Suggest picks a zone for a detected location. A zone whose area list names
// the city wins, then one naming the region itself; otherwise the first zone
// of the region is returned.
func Suggest(loc *geo.Location) (Zone, bool) {
	if loc == nil || !strings.EqualFold(loc.Country, "Malaysia") {
		return Zone{}, false
	}

	region := loc.Region
	if region == "" {
		region = loc.City
	}
	candidates := ForState(region)
	if len(candidates) == 0 {
		return Zone{}, false
	}

	for _, name := range []string{loc.City, loc.Region} {
		if z, ok := byArea(candidates, name); ok {
			return z, true
		}
	}
	return candidates[0], true
}

// byArea returns the first zone whose area list names name.
func byArea(candidates []Zone, name string) (Zone, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Zone{}, false
	}
	for _, z := range candidates {
		for _, area := range strings.Split(z.Areas, ",") {
			if strings.EqualFold(strings.TrimSpace(area), name) {
				return z, true
			}
		}
	}
	return Zone{}, false
}
