// Package catalog содержит статический каталог услуг МПП и расписание окон приёма.
package catalog

import "github.com/mmeshcher/antrian-system/internal/model"

// TimeSlots перечисляет фиксированные окна приёма в течение рабочего дня.
// Обеденный час 12:00 - 13:00 недоступен для записи.
var TimeSlots = []string{
	"08:00 - 09:00",
	"09:00 - 10:00",
	"10:00 - 11:00",
	"11:00 - 12:00",
	"13:00 - 14:00",
	"14:00 - 15:00",
}

var services = []model.ServiceDefinition{
	{
		ID:                     "ktp",
		Name:                   "e-KTP",
		Icon:                   "CreditCard",
		Code:                   "A",
		Description:            "Pembuatan dan perbaikan KTP Elektronik",
		EstimatedTimePerPerson: 10,
	},
	{
		ID:                     "kk",
		Name:                   "Kartu Keluarga",
		Icon:                   "UserPlus",
		Code:                   "B",
		Description:            "Pecah KK, penambahan anggota keluarga",
		EstimatedTimePerPerson: 15,
	},
	{
		ID:                     "paspor",
		Name:                   "Paspor",
		Icon:                   "Globe",
		Code:                   "C",
		Description:            "Pembuatan paspor baru dan penggantian",
		EstimatedTimePerPerson: 20,
	},
	{
		ID:                     "sim",
		Name:                   "SIM A/C",
		Icon:                   "Car",
		Code:                   "F",
		Description:            "Perpanjangan Surat Izin Mengemudi",
		EstimatedTimePerPerson: 5,
	},
	{
		ID:                     "akta",
		Name:                   "Akta Lahir",
		Icon:                   "Baby",
		Code:                   "D",
		Description:            "Pencatatan kelahiran baru",
		EstimatedTimePerPerson: 12,
	},
	{
		ID:                     "surat-pindah",
		Name:                   "Surat Pindah",
		Icon:                   "FileText",
		Code:                   "E",
		Description:            "Surat Keterangan Pindah WNI (SKPWNI)",
		EstimatedTimePerPerson: 8,
	},
}

var initialQueue = map[string]int{
	"A": 12,
	"B": 5,
	"C": 8,
	"D": 3,
	"E": 1,
	"F": 20,
}

// Catalog предоставляет доступ к записям каталога услуг.
type Catalog struct {
	services []model.ServiceDefinition
	byID     map[string]model.ServiceDefinition
}

// New создаёт каталог с набором услуг по умолчанию.
func New() *Catalog {
	return newWith(services)
}

func newWith(defs []model.ServiceDefinition) *Catalog {
	byID := make(map[string]model.ServiceDefinition, len(defs))
	for _, s := range defs {
		byID[s.ID] = s
	}
	return &Catalog{
		services: defs,
		byID:     byID,
	}
}

// Services возвращает услуги каталога в порядке объявления.
func (c *Catalog) Services() []model.ServiceDefinition {
	out := make([]model.ServiceDefinition, len(c.services))
	copy(out, c.services)
	return out
}

// ByID ищет услугу по идентификатору.
func (c *Catalog) ByID(id string) (model.ServiceDefinition, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// InitialQueue возвращает стартовые значения счётчиков очередей по кодам услуг.
func (c *Catalog) InitialQueue() map[string]int {
	out := make(map[string]int, len(initialQueue))
	for code, n := range initialQueue {
		out[code] = n
	}
	return out
}

// IsValidTimeSlot проверяет, что строка является одним из фиксированных окон приёма.
func IsValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}
