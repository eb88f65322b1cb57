package listing

import "github.com/TruckScoutAI/truckscout-engine/engine/domain"

// DemoFleet returns a small representative inventory used when the server
// starts without a live feed. Prices and mileages are plausible for the
// European used-truck market, not sourced from real listings.
func DemoFleet() []domain.VehicleFeatures {
	return []domain.VehicleFeatures{
		{
			ID: "e3e70682-c209-4cac-a29f-6fbed82c07cd",
			Brand: "Mercedes-Benz", Model: "Actros 1845", Year: 2020, MileageKM: 380000,
			Price: 62500, Category: domain.CategoryTractorUnit, Condition: domain.ConditionUsed,
			FuelType: domain.FuelDiesel, Transmission: domain.TransmissionAutomatic,
			EuroStandard: "Euro 6", PowerHP: 450, AxleConfig: "4x2", Location: "Hamburg",
			Description: "Actros 1845 StreamSpace, retarder, full service history, standklima, MirrorCam.",
			Flags:       domain.FeatureFlags{Retarder: true, AdaptiveCruise: true, SleeperCab: true},
		},
		{
			ID: "f728b4fa-4248-4e3a-8a5d-2f346baa9455",
			Brand: "Mercedes-Benz", Model: "Actros 2545", Year: 2019, MileageKM: 520000,
			Price: 48900, Category: domain.CategoryTractorUnit, Condition: domain.ConditionUsed,
			FuelType: domain.FuelDiesel, Transmission: domain.TransmissionAutomatic,
			EuroStandard: "Euro 6", PowerHP: 450, AxleConfig: "6x2", Location: "Bremen",
			Description: "Actros 2545 with liftable third axle, retarder, new clutch at 480k.",
			Flags:       domain.FeatureFlags{Retarder: true, SleeperCab: true},
		},
		{
			ID: "eb1167b3-67a9-4378-bc65-c1e582e2e662",
			Brand: "Scania", Model: "R450", Year: 2021, MileageKM: 290000,
			Price: 74900, Category: domain.CategoryTractorUnit, Condition: domain.ConditionUsed,
			FuelType: domain.FuelDiesel, Transmission: domain.TransmissionAutomatic,
			EuroStandard: "Euro 6", PowerHP: 450, AxleConfig: "4x2", Location: "Rotterdam",
			Description: "Scania R450 Highline, retarder, full Scania service history, alloy tanks.",
			Flags:       domain.FeatureFlags{Retarder: true, AdaptiveCruise: true, SleeperCab: true},
		},
		{
			ID: "f7c1bd87-4da5-4709-9471-3d60c8a70639",
			Brand: "Scania", Model: "S500", Year: 2022, MileageKM: 180000,
			Price: 96500, Category: domain.CategoryTractorUnit, Condition: domain.ConditionUsed,
			FuelType: domain.FuelDiesel, Transmission: domain.TransmissionAutomatic,
			EuroStandard: "Euro 6", PowerHP: 500, AxleConfig: "4x2", Location: "Antwerp",
			Description: "S500 flat-floor sleeper cab, retarder, fridge, microwave, parking cooler.",
			Flags:       domain.FeatureFlags{Retarder: true, AdaptiveCruise: true, SleeperCab: true},
		},
		{
			ID: "e443df78-9558-467f-9ba9-1faf7a024204",
			Brand: "Volvo", Model: "FH 460", Year: 2018, MileageKM: 640000,
			Price: 36900, Category: domain.CategoryTractorUnit, Condition: domain.ConditionUsed,
			FuelType: domain.FuelDiesel, Transmission: domain.TransmissionAutomatic,
			EuroStandard: "Euro 6", PowerHP: 460, AxleConfig: "4x2", Location: "Gothenburg",
			Description: "FH 460 Globetrotter, I-Shift, VEB+ engine brake, one owner from new.",
			Flags:       domain.FeatureFlags{Retarder: true, SleeperCab: true},
		},
		{
			ID: "23a7711a-8133-4876-b7eb-dcd9e87a1613",
			Brand: "Volvo", Model: "FH 500", Year: 2021, MileageKM: 310000,
			Price: 72800, Category: domain.CategoryTractorUnit, Condition: domain.ConditionUsed,
			FuelType: domain.FuelDiesel, Transmission: domain.TransmissionAutomatic,
			EuroStandard: "Euro 6", PowerHP: 500, AxleConfig: "6x2", Location: "Malmö",
			Description: "FH 500 6x2 pusher, I-Shift dual clutch, full Volvo history, Globetrotter XL.",
			Flags:       domain.FeatureFlags{Retarder: true, AdaptiveCruise: true, SleeperCab: true},
		},
		{
			ID: "1846d424-c17c-4279-a3c6-612f48268673",
			Brand: "MAN", Model: "TGX 18.470", Year: 2020, MileageKM: 450000,
			Price: 51500, Category: domain.CategoryTractorUnit, Condition: domain.ConditionUsed,
			FuelType: domain.FuelDiesel, Transmission: domain.TransmissionAutomatic,
			EuroStandard: "Euro 6", PowerHP: 470, AxleConfig: "4x2", Location: "Munich",
			Description: "TGX 18.470 GX cab, TipMatic, Intarder, lane assist, adaptive cruise.",
			Flags:       domain.FeatureFlags{Retarder: true, SleeperCab: true},
		},
		{
			ID: "fcbd04c3-4021-4ef7-8ca5-a5a19e4d6e3c",
			Brand: "DAF", Model: "XF 480", Year: 2019, MileageKM: 560000,
			Price: 41900, Category: domain.CategoryTractorUnit, Condition: domain.ConditionUsed,
			FuelType: domain.FuelDiesel, Transmission: domain.TransmissionAutomatic,
			EuroStandard: "Euro 6", PowerHP: 480, AxleConfig: "4x2", Location: "Eindhoven",
			Description: "XF 480 Super Space Cab, MX engine brake, fridge, double bunk.",
			Flags:       domain.FeatureFlags{SleeperCab: true},
		},
		{
			ID: "b4862b21-fb97-4435-8856-1712e8e5216a",
			Brand: "Iveco", Model: "S-Way 480", Year: 2021, MileageKM: 340000,
			Price: 55400, Category: domain.CategoryTractorUnit, Condition: domain.ConditionUsed,
			FuelType: domain.FuelDiesel, Transmission: domain.TransmissionAutomatic,
			EuroStandard: "Euro 6", PowerHP: 480, AxleConfig: "4x2", Location: "Turin",
			Description: "S-Way AS cab, Hi-Tronix, retarder, warranty until 2027.",
			Flags:       domain.FeatureFlags{Retarder: true, SleeperCab: true},
		},
		{
			ID: "259f4329-e6f4-490b-9a16-4106cf6a659e",
			Brand: "Renault Trucks", Model: "T480", Year: 2020, MileageKM: 490000,
			Price: 44900, Category: domain.CategoryTractorUnit, Condition: domain.ConditionUsed,
			FuelType: domain.FuelDiesel, Transmission: domain.TransmissionAutomatic,
			EuroStandard: "Euro 6", PowerHP: 480, AxleConfig: "4x2", Location: "Lyon",
			Description: "T480 High Sleeper, Optidriver, Optibrake, maintained at Renault dealer.",
			Flags:       domain.FeatureFlags{AdaptiveCruise: true, SleeperCab: true},
		},
		{
			ID: "12e0c8b2-bad6-40fb-9948-8dec4f65d4d9",
			Brand: "MAN", Model: "TGS 35.420", Year: 2019, MileageKM: 210000,
			Price: 78500, Category: domain.CategoryTipper, Condition: domain.ConditionUsed,
			FuelType: domain.FuelDiesel, Transmission: domain.TransmissionManual,
			EuroStandard: "Euro 6", PowerHP: 420, AxleConfig: "8x4", Location: "Vienna",
			Description: "TGS 8x4 Meiller three-way tipper, steel body, Bordmatik tarpaulin.",
		},
		{
			ID: "5487ce1e-af19-422a-99b8-a714e61a441c",
			Brand: "Mercedes-Benz", Model: "Arocs 3243", Year: 2017, MileageKM: 330000,
			Price: 59900, Category: domain.CategoryTipper, Condition: domain.ConditionUsed,
			FuelType: domain.FuelDiesel, Transmission: domain.TransmissionAutomatic,
			EuroStandard: "Euro 6", PowerHP: 430, AxleConfig: "8x4", Location: "Prague",
			Description: "Arocs 3243 Meiller tipper, PowerShift, new brakes all round.",
		},
		{
			ID: "5a921187-19c7-4df4-8f4f-f31e78de5857",
			Brand: "DAF", Model: "LF 230", Year: 2022, MileageKM: 95000,
			Price: 46500, Category: domain.CategoryBoxTruck, Condition: domain.ConditionUsed,
			FuelType: domain.FuelDiesel, Transmission: domain.TransmissionAutomatic,
			EuroStandard: "Euro 6", PowerHP: 230, AxleConfig: "4x2", Location: "Utrecht",
			Description: "LF 230 box with tail lift, 18-pallet body, city distribution spec.",
		},
		{
			ID: "a3f2c9bf-9c63-46b9-90f2-44556f25e2a2",
			Brand: "Volvo", Model: "FE Electric", Year: 2023, MileageKM: 42000,
			Price: 189000, Category: domain.CategoryBoxTruck, Condition: domain.ConditionUsed,
			FuelType: domain.FuelElectric, Transmission: domain.TransmissionAutomatic,
			PowerHP: 400, AxleConfig: "4x2", Location: "Amsterdam",
			Description: "FE Electric 4x2 box, 265 kWh pack, CCS rapid charging, zero-emission zone ready.",
		},
		{
			ID: "8d723104-f773-43c1-b458-a748e9bb17bc",
			Brand: "Scania", Model: "P320 Hybrid", Year: 2021, MileageKM: 160000,
			Price: 82500, Category: domain.CategoryBoxTruck, Condition: domain.ConditionUsed,
			FuelType: domain.FuelHybrid, Transmission: domain.TransmissionAutomatic,
			EuroStandard: "Euro 6", PowerHP: 320, AxleConfig: "4x2", Location: "Stockholm",
			Description: "P320 hybrid distribution truck, quiet-mode PTO, tail lift, camera system.",
		},
	}
}
