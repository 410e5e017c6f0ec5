package search

import "github.com/cargomarket/backend/model"

// geoDirectory is the static country/region/city table behind the filter
// suggestion lists. It intentionally is not the admin geo_location reference
// data: search matches free-text strings, the admin table is for back-office
// curation.
var geoDirectory = model.GeoDirectory{
	Countries: []model.GeoDirectoryCountry{
		{
			Name: "Украина",
			Regions: []model.GeoDirectoryRegion{
				{Name: "Киевская область", Cities: []string{"Киев", "Бровары", "Борисполь"}},
				{Name: "Одесская область", Cities: []string{"Одесса", "Измаил", "Черноморск"}},
				{Name: "Львовская область", Cities: []string{"Львов", "Дрогобыч", "Стрый"}},
				{Name: "Харьковская область", Cities: []string{"Харьков", "Изюм", "Лозовая"}},
			},
		},
		{
			Name: "Узбекистан",
			Regions: []model.GeoDirectoryRegion{
				{Name: "Ташкентская область", Cities: []string{"Ташкент", "Ангрен", "Чирчик"}},
				{Name: "Самаркандская область", Cities: []string{"Самарканд", "Каттакурган"}},
				{Name: "Ферганская область", Cities: []string{"Фергана", "Коканд", "Маргилан"}},
			},
		},
		{
			Name: "Казахстан",
			Regions: []model.GeoDirectoryRegion{
				{Name: "Алматинская область", Cities: []string{"Алматы", "Талдыкорган"}},
				{Name: "Акмолинская область", Cities: []string{"Астана", "Кокшетау"}},
				{Name: "Туркестанская область", Cities: []string{"Шымкент", "Туркестан"}},
			},
		},
		{
			Name: "Россия",
			Regions: []model.GeoDirectoryRegion{
				{Name: "Московская область", Cities: []string{"Москва", "Подольск", "Химки"}},
				{Name: "Ленинградская область", Cities: []string{"Санкт-Петербург", "Гатчина"}},
				{Name: "Ростовская область", Cities: []string{"Ростов-на-Дону", "Таганрог"}},
			},
		},
		{
			Name: "Польша",
			Regions: []model.GeoDirectoryRegion{
				{Name: "Мазовецкое воеводство", Cities: []string{"Варшава", "Радом"}},
				{Name: "Малопольское воеводство", Cities: []string{"Краков", "Тарнув"}},
			},
		},
	},
}

func (s *searchAppImpl) Directory() *model.GeoDirectory {
	return &geoDirectory
}
