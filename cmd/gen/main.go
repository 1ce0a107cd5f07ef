package main

import (
	"jordanmarket/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.UserModel{},
		model.SellerProfileModel{},
		model.DriverProfileModel{},
		model.ProductModel{},
		model.OrderModel{},
		model.OrderItemModel{},
		model.DeliveryModel{},
		model.CashCollectionModel{},
		model.WalletModel{},
		model.WalletTransactionModel{},
		model.TopupCodeModel{},
		model.NotificationModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
