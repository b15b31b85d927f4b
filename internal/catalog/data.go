package catalog

// defaultRecipes is the built-in ten recipe catalog. Units are kept
// singular so identical items from different recipes consolidate.
var defaultRecipes = []Recipe{
	{
		Name: "Spaghetti Aglio e Olio",
		Ingredients: []Ingredient{
			{Item: "spaghetti", Quantity: 1, Unit: "lb", Price: 1.50},
			{Item: "garlic", Quantity: 1, Unit: "bulb", Price: 0.75},
			{Item: "olive oil", Quantity: 0.5, Unit: "cup", Price: 2.00},
			{Item: "red pepper flakes", Quantity: 1, Unit: "tsp", Price: 0.25},
		},
		Tags: []Tag{TagVegetarian, TagVegan},
	},
	{
		Name: "Chicken Stir-Fry",
		Ingredients: []Ingredient{
			{Item: "chicken breast", Quantity: 1, Unit: "lb", Price: 4.99},
			{Item: "mixed vegetables", Quantity: 2, Unit: "cup", Price: 2.50},
			{Item: "soy sauce", Quantity: 3, Unit: "tbsp", Price: 0.50},
			{Item: "rice", Quantity: 2, Unit: "cup", Price: 1.00},
		},
		Tags: []Tag{TagGlutenFree},
	},
	{
		Name: "Black Bean Tacos",
		Ingredients: []Ingredient{
			{Item: "black beans", Quantity: 2, Unit: "can", Price: 2.00},
			{Item: "corn tortillas", Quantity: 12, Unit: "count", Price: 2.50},
			{Item: "avocado", Quantity: 2, Unit: "count", Price: 3.00},
			{Item: "salsa", Quantity: 1, Unit: "jar", Price: 2.50},
		},
		Tags: []Tag{TagVegetarian, TagVegan, TagGlutenFree},
	},
	{
		Name: "Lentil Soup",
		Ingredients: []Ingredient{
			{Item: "lentils", Quantity: 1, Unit: "lb", Price: 2.00},
			{Item: "carrots", Quantity: 4, Unit: "count", Price: 1.50},
			{Item: "celery", Quantity: 3, Unit: "stalk", Price: 1.00},
			{Item: "vegetable broth", Quantity: 4, Unit: "cup", Price: 2.00},
		},
		Tags: []Tag{TagVegetarian, TagVegan, TagGlutenFree},
	},
	{
		Name: "Baked Salmon with Veggies",
		Ingredients: []Ingredient{
			{Item: "salmon fillet", Quantity: 1, Unit: "lb", Price: 7.99},
			{Item: "broccoli", Quantity: 1, Unit: "lb", Price: 2.00},
			{Item: "lemon", Quantity: 1, Unit: "count", Price: 0.50},
			{Item: "olive oil", Quantity: 2, Unit: "tbsp", Price: 0.50},
		},
		Tags: []Tag{TagGlutenFree, TagLowCarb},
	},
	{
		Name: "Veggie Fried Rice",
		Ingredients: []Ingredient{
			{Item: "rice", Quantity: 2, Unit: "cup", Price: 1.00},
			{Item: "mixed vegetables", Quantity: 2, Unit: "cup", Price: 2.50},
			{Item: "eggs", Quantity: 3, Unit: "count", Price: 1.00},
			{Item: "soy sauce", Quantity: 3, Unit: "tbsp", Price: 0.50},
		},
		Tags: []Tag{TagVegetarian},
	},
	{
		Name: "Margherita Pizza",
		Ingredients: []Ingredient{
			{Item: "pizza dough", Quantity: 1, Unit: "lb", Price: 2.00},
			{Item: "mozzarella cheese", Quantity: 8, Unit: "oz", Price: 3.50},
			{Item: "tomato sauce", Quantity: 1, Unit: "cup", Price: 1.50},
			{Item: "fresh basil", Quantity: 1, Unit: "bunch", Price: 2.00},
		},
		Tags: []Tag{TagVegetarian},
	},
	{
		Name: "Greek Salad",
		Ingredients: []Ingredient{
			{Item: "romaine lettuce", Quantity: 1, Unit: "head", Price: 1.50},
			{Item: "feta cheese", Quantity: 6, Unit: "oz", Price: 3.00},
			{Item: "cucumber", Quantity: 2, Unit: "count", Price: 1.50},
			{Item: "cherry tomatoes", Quantity: 1, Unit: "pint", Price: 2.50},
			{Item: "olives", Quantity: 0.5, Unit: "cup", Price: 2.00},
			{Item: "olive oil", Quantity: 3, Unit: "tbsp", Price: 0.75},
		},
		Tags: []Tag{TagVegetarian, TagGlutenFree, TagLowCarb},
	},
	{
		Name: "Beef Chili",
		Ingredients: []Ingredient{
			{Item: "ground beef", Quantity: 1, Unit: "lb", Price: 5.99},
			{Item: "kidney beans", Quantity: 2, Unit: "can", Price: 2.00},
			{Item: "diced tomatoes", Quantity: 1, Unit: "can", Price: 1.50},
			{Item: "onion", Quantity: 1, Unit: "count", Price: 0.75},
			{Item: "chili powder", Quantity: 2, Unit: "tbsp", Price: 0.50},
		},
		Tags: []Tag{TagGlutenFree},
	},
	{
		Name: "Mushroom Risotto",
		Ingredients: []Ingredient{
			{Item: "arborio rice", Quantity: 1.5, Unit: "cup", Price: 3.00},
			{Item: "mushrooms", Quantity: 1, Unit: "lb", Price: 3.50},
			{Item: "vegetable broth", Quantity: 6, Unit: "cup", Price: 3.00},
			{Item: "parmesan cheese", Quantity: 0.5, Unit: "cup", Price: 2.50},
			{Item: "white wine", Quantity: 0.5, Unit: "cup", Price: 2.00},
			{Item: "butter", Quantity: 3, Unit: "tbsp", Price: 1.00},
		},
		Tags: []Tag{TagVegetarian, TagGlutenFree},
	},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultRecipes)
	if err != nil {
		// The built-in data is validated by tests; this cannot happen
		// at runtime.
		panic(err)
	}
	return c
}
