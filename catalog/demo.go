package catalog

import "github.com/levelup-gaming/levelup-api/models"

// DemoProducts is the seed catalog for installs that have never synced
// against the remote API.
func DemoProducts() []models.Product {
	return []models.Product{
		demoProduct(1, "PlayStation 5", "Consola PlayStation 5 estándar con 825GB SSD", 499990, 8, "https://via.placeholder.com/300x200/003791/FFFFFF?text=PlayStation+5"),
		demoProduct(2, "Xbox Series X", "Consola Xbox Series X con 1TB SSD", 479990, 6, "https://via.placeholder.com/300x200/107C10/FFFFFF?text=Xbox+Series+X"),
		demoProduct(3, "Nintendo Switch OLED", "Consola híbrida con pantalla OLED de 7 pulgadas", 389990, 10, "https://via.placeholder.com/300x200/E60012/FFFFFF?text=Switch+OLED"),
		demoProduct(4, "Auriculares Gaming RGB", "Headset con sonido envolvente 7.1 y micrófono desmontable", 59990, 25, "https://via.placeholder.com/300x200/4A148C/FFFFFF?text=Headset+RGB"),
		demoProduct(5, "Teclado Mecánico RGB", "Teclado mecánico con switches rojos y retroiluminación personalizable", 69990, 18, "https://via.placeholder.com/300x200/1A237E/FFFFFF?text=Teclado+RGB"),
		demoProduct(6, "Mouse Gamer 16000 DPI", "Mouse óptico con 8 botones programables", 39990, 30, "https://via.placeholder.com/300x200/004D40/FFFFFF?text=Mouse+Gamer"),
		demoProduct(7, "Silla Gamer Ergonómica", "Silla con soporte lumbar y reclinación 160°", 199990, 5, "https://via.placeholder.com/300x200/263238/FFFFFF?text=Silla+Gamer"),
		demoProduct(8, "Monitor 27\" 165Hz", "Monitor 2K con tasa de refresco de 165Hz", 249990, 7, "https://via.placeholder.com/300x200/01579B/FFFFFF?text=Monitor+27+165Hz"),
	}
}

func demoProduct(id uint, name, description string, price, stock int, imageUrl string) models.Product {
	product := models.Product{
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		ImageUrl:    imageUrl,
	}
	product.ID = id
	return product
}
