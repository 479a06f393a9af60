// Package inventory serves the showroom's vehicle catalog: listing, search
// with filters and price statistics, and vehicle detail pages.
package inventory

import "strings"

// Vehicle is one car on the showroom floor.
type Vehicle struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Price        float64  `json:"price"`
	Year         int      `json:"year"`
	Mileage      int      `json:"mileage"`
	Category     string   `json:"category"`
	Fuel         string   `json:"fuel"`
	Transmission string   `json:"transmission"`
	Featured     bool     `json:"featured"`
	Specs        Specs    `json:"specs"`
	Features     []string `json:"features"`
}

type Specs struct {
	Engine       string `json:"engine"`
	Horsepower   string `json:"horsepower"`
	Torque       string `json:"torque"`
	TopSpeed     string `json:"topSpeed"`
	Acceleration string `json:"acceleration"`
	Drivetrain   string `json:"drivetrain"`
	Color        string `json:"color"`
	Interior     string `json:"interior"`
	VIN          string `json:"vin"`
}

// Filter option values offered by the inventory page.
var (
	Makes       = []string{"ferrari", "lamborghini", "mclaren"}
	Categories  = []string{"sports", "sedan", "suv"}
	Years       = []int{2024, 2023, 2022}
	PriceRanges = []string{"0-300000", "300000-500000", "500000"}
)

// DefaultVehicles is the current showroom stock.
func DefaultVehicles() []Vehicle {
	return []Vehicle{
		{
			ID: 1, Name: "Ferrari 488 GTB", Make: "Ferrari", Model: "488 GTB",
			Price: 280000, Year: 2024, Mileage: 0, Category: "sports",
			Fuel: "Gasoline", Transmission: "Automatic", Featured: true,
			Specs: Specs{
				Engine: "3.9L V8 Twin Turbo", Horsepower: "661 HP", Torque: "561 lb-ft",
				TopSpeed: "205 mph", Acceleration: "3.0s (0-60 mph)", Drivetrain: "RWD",
				Color: "Rosso Corsa Red", Interior: "Black Leather", VIN: "ZFF79ALA5K0123456",
			},
			Features: []string{
				"Carbon Fiber Steering Wheel", "Premium Sound System", "Navigation System",
				"Parking Sensors", "Adaptive Suspension", "Launch Control",
				"Traction Control", "Electronic Stability Control",
			},
		},
		{
			ID: 2, Name: "Lamborghini Aventador", Make: "Lamborghini", Model: "Aventador LP 740-4 S",
			Price: 450000, Year: 2024, Mileage: 0, Category: "sports",
			Fuel: "Gasoline", Transmission: "Automatic", Featured: true,
			Specs: Specs{
				Engine: "6.5L V12", Horsepower: "740 HP", Torque: "509 lb-ft",
				TopSpeed: "217 mph", Acceleration: "2.9s (0-60 mph)", Drivetrain: "AWD",
				Color: "Nero Aldebaran Black", Interior: "Nero Alde Leather", VIN: "ZHWUC1ZD5KLA12345",
			},
			Features: []string{
				"Active Aerodynamics", "Carbon Ceramic Brakes", "Adaptive Dampers",
				"Launch Control", "Multiple Drive Modes", "Premium Audio System",
				"Navigation System", "Parking Camera",
			},
		},
		{
			ID: 3, Name: "McLaren 720S", Make: "McLaren", Model: "720S",
			Price: 320000, Year: 2023, Mileage: 1200, Category: "sports",
			Fuel: "Gasoline", Transmission: "Automatic", Featured: false,
			Specs: Specs{
				Engine: "4.0L V8 Twin Turbo", Horsepower: "710 HP", Torque: "568 lb-ft",
				TopSpeed: "212 mph", Acceleration: "2.8s (0-60 mph)", Drivetrain: "RWD",
				Color: "Supernova Silver", Interior: "Carbon Black Leather", VIN: "SBM14DCA5KW123456",
			},
			Features: []string{
				"Active Suspension", "Carbon Fiber Body", "Butterfly Doors", "Track Mode",
				"Premium Meridian Audio", "Climate Control", "Reversing Camera",
				"Tire Pressure Monitoring",
			},
		},
	}
}

// matchesQuery is a case-insensitive substring match on name or make.
func (v Vehicle) matchesQuery(q string) bool {
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(v.Name), q) || strings.Contains(strings.ToLower(v.Make), q)
}
